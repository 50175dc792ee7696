package leads

import "github.com/JaimeStill/qualifier/pkg/openapi"

var tierEnum = []any{"HIGH", "MEDIUM", "LOW", "UNQUALIFIED"}

// Schemas returns the component schemas referenced by the lead operations.
func Schemas() map[string]*openapi.Schema {
	errorEntry := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"step":    {Type: "string", Description: "Node that recorded the error"},
			"kind":    {Type: "string", Enum: []any{"input_invalid", "enrichment_unavailable", "reasoning_unavailable", "persistence_failed", "contract_violation"}},
			"message": {Type: "string"},
		},
	}

	return map[string]*openapi.Schema{
		"QualifyCommand": {
			Type:     "object",
			Required: []string{"name", "email", "message"},
			Properties: map[string]*openapi.Schema{
				"name":    {Type: "string", Example: "Dana Reyes"},
				"email":   {Type: "string", Format: "email", Example: "dana@acme.com"},
				"message": {Type: "string", Example: "We need 200 seats by next quarter."},
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"run_id":             {Type: "string", Format: "uuid"},
				"tier":               {Type: "string", Enum: tierEnum},
				"rationale":          {Type: "string"},
				"category":           {Type: "string"},
				"enrichment_summary": {Type: "string"},
				"errors":             {Type: "array", Items: errorEntry},
				"trail":              {Type: "array", Items: &openapi.Schema{Type: "object", Description: "Visited node with timing and outcome"}},
				"record_id":          {Type: "string", Format: "uuid"},
				"completed_at":       {Type: "string", Format: "date-time"},
			},
		},
		"Lead": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                 {Type: "string", Format: "uuid"},
				"run_id":             {Type: "string", Format: "uuid"},
				"name":               {Type: "string"},
				"email":              {Type: "string"},
				"message":            {Type: "string"},
				"tier":               {Type: "string", Enum: tierEnum},
				"rationale":          {Type: "string"},
				"category":           {Type: "string"},
				"enrichment_summary": {Type: "string"},
				"errors":             {Type: "array", Items: errorEntry},
				"created_at":         {Type: "string", Format: "date-time"},
			},
		},
		"LeadPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Lead")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"LeadSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":           {Type: "integer"},
				"page_size":      {Type: "integer"},
				"search":         {Type: "string", Description: "Matches name, email, or message"},
				"sort":           {Type: "string", Example: "-created_at"},
				"tier":           {Type: "string", Enum: tierEnum},
				"email":          {Type: "string"},
				"created_after":  {Type: "string", Format: "date-time"},
				"created_before": {Type: "string", Format: "date-time"},
			},
		},
		"Audit": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"lead":   openapi.SchemaRef("QualifyCommand"),
				"result": openapi.SchemaRef("Result"),
			},
		},
	}
}

var (
	listOp = &openapi.Operation{
		Summary: "List qualified leads",
		Tags:    []string{"Leads"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches name, email, or message", false),
			openapi.QueryParam("sort", "string", "Sort fields, - prefix for descending", false),
			openapi.QueryParam("tier", "string", "Tier filter", false),
			openapi.QueryParam("email", "string", "Email substring filter", false),
			openapi.QueryParam("created_after", "string", "RFC 3339 lower bound", false),
			openapi.QueryParam("created_before", "string", "RFC 3339 upper bound", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of leads", "LeadPage"),
		},
	}

	findOp = &openapi.Operation{
		Summary:    "Find a lead by id",
		Tags:       []string{"Leads"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Lead id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Lead", "Lead"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	auditOp = &openapi.Operation{
		Summary:     "Fetch the archived run audit for a lead",
		Description: "Returns the submitted lead and the full run result including the node trail.",
		Tags:        []string{"Leads"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Lead id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Run audit", "Audit"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	}

	searchOp = &openapi.Operation{
		Summary:     "Search leads",
		Tags:        []string{"Leads"},
		RequestBody: openapi.RequestBodyJSON("LeadSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of leads", "LeadPage"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	}

	qualifyOp = &openapi.Operation{
		Summary:     "Qualify a lead",
		Description: "Runs the qualification workflow. Degraded runs still return a result with populated errors.",
		Tags:        []string{"Leads"},
		RequestBody: openapi.RequestBodyJSON("QualifyCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Run result", "Result"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	}
)
