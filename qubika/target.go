package qubika

const (
	// EntryURL is the address the scenario navigates to.
	EntryURL = "https://www.qubika.com"
	// CanonicalURL is where the site redirects EntryURL to.
	CanonicalURL = "https://qubika.com/"
)

// Target is the site a scenario runs against.
type Target struct {
	EntryURL     string
	CanonicalURL string
}

// DefaultTarget returns the public Qubika site.
func DefaultTarget() Target {
	return Target{
		EntryURL:     EntryURL,
		CanonicalURL: CanonicalURL,
	}
}
