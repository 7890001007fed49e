package types

// Service exposes named methods the shell dispatches commands to.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
