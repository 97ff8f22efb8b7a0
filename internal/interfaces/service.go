package interfaces

// Service defines the methods that every interface exposing the pool, like
// the JSON-RPC one, must be compliant with.
type Service interface {
	Start() error
	Stop()
}
