package workflow

// Transition returns the node that follows from. It only reads s.
//
//	intake   -> finalize when intake already decided the tier, else enrich
//	enrich   -> reason
//	reason   -> finalize
//	finalize -> done
func Transition(from Node, s *State) Node {
	switch from {
	case NodeIntake:
		if s.Tier != "" {
			return NodeFinalize
		}
		return NodeEnrich
	case NodeEnrich:
		return NodeReason
	case NodeReason:
		return NodeFinalize
	default:
		return NodeDone
	}
}
