package httpmodel

// AuthScheme identifies the authentication protocol of a Realm.
type AuthScheme uint8

const (
	AuthBasic AuthScheme = iota
	AuthDigest
	AuthNTLM
	AuthKerberos
	AuthSpnego
)

func (s AuthScheme) String() string {
	switch s {
	case AuthBasic:
		return "Basic"
	case AuthDigest:
		return "Digest"
	case AuthNTLM:
		return "NTLM"
	case AuthKerberos:
		return "Kerberos"
	case AuthSpnego:
		return "SPNEGO"
	}
	return "Unknown"
}

// Realm is the authentication context attached to a request. The
// redirect engine only reads the scheme: NTLM binds credentials to a
// connection, so its headers must never be replayed toward a redirect
// target.
type Realm struct {
	Scheme    AuthScheme
	Principal string
	Password  string
}
