package domain

// Principal is a verified identity extracted from a credential. It carries no
// authorization information and lives only for the duration of one request.
type Principal struct {
	ID       string // opaque subject identifier assigned by the identity provider
	Email    string
	Metadata map[string]interface{} // raw claims from the verified credential
}
