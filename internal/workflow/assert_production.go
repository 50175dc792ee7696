//go:build production

package workflow

const strictContracts = false
