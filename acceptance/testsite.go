//go:build acceptance
// +build acceptance

package acceptance

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/networkteam/contactform-e2e/contactform"
	"github.com/networkteam/contactform-e2e/qubika"
)

// SiteField is a field of the contact form served by the test site.
type SiteField struct {
	Name     string
	Label    string
	Required bool
	// Unwrapped renders the field without its hs-form-field wrapper
	Unwrapped bool
}

// TestSiteOptions change the markup of the test site to provoke failures.
type TestSiteOptions struct {
	// ErrorColor is the CSS color of validation messages.
	// Default: "", will use contactform.ErrorColor
	ErrorColor string
	// Fields of the contact form.
	// Default: nil, will use DefaultSiteFields()
	Fields []SiteField
}

// DefaultSiteFields mirrors the required fields of the live contact form plus an optional one.
func DefaultSiteFields() []SiteField {
	return []SiteField{
		{Name: qubika.FirstNameField, Label: "First Name", Required: true},
		{Name: qubika.LastNameField, Label: "Last Name", Required: true},
		{Name: qubika.EmailField, Label: "Email", Required: true},
		{Name: "company", Label: "Company", Required: true},
		{Name: "phone", Label: "Phone"},
	}
}

// TestSite serves a copy of the marketing page structure with a HubSpot style contact form.
// "/www" redirects to "/" like the www host of the live site does.
type TestSite struct {
	Server *httptest.Server
	Target qubika.Target
}

// NewTestSite starts the test site. It is shut down with t.Cleanup.
func NewTestSite(t *testing.T, opts TestSiteOptions) *TestSite {
	t.Helper()

	if opts.ErrorColor == "" {
		opts.ErrorColor = contactform.ErrorColor
	}
	if opts.Fields == nil {
		opts.Fields = DefaultSiteFields()
	}

	data := struct {
		ErrorColor template.CSS
		FormID     string
		Fields     []SiteField
	}{
		ErrorColor: template.CSS(opts.ErrorColor),
		FormID:     qubika.ContactFormID,
		Fields:     opts.Fields,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /www", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := homeTemplate.Execute(w, data); err != nil {
			t.Errorf("rendering test site: %v", err)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &TestSite{
		Server: server,
		Target: qubika.Target{
			EntryURL:     server.URL + "/www",
			CanonicalURL: server.URL + "/",
		},
	}
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Qubika</title>
<style>
	.modal { display: none; }
	.modal.show { display: block; }
	.hs-error-msgs { list-style: none; margin: 0; padding: 0; }
	.hs-error-msg { color: {{.ErrorColor}}; }
</style>
</head>
<body>
<div class="overflower">
	<header>
		<div class="content"><a class="logo" href="/">Qubika</a></div>
	</header>
	<section class="hero active">
		<div class="content text-intro">
			<h1>Digital transformation</h1>
			<div><a href="#contact" id="contact-us">Contact us</a></div>
		</div>
	</section>
	<div class="modal contact-us-modal">
		<div class="modal-dialog">
			<form id="{{.FormID}}" novalidate>
				{{range .Fields}}
				<div class="{{if .Unwrapped}}plain-field{{else}}hs_{{.Name}} hs-form-field{{end}}">
					<label>{{.Label}}</label>
					<div class="input"><input type="text" name="{{.Name}}"{{if .Required}} required{{end}}></div>
				</div>
				{{end}}
				<div class="hs_submit hs-submit">
					<div class="actions"><input type="submit" class="hs-button primary large" value="Submit"></div>
				</div>
			</form>
		</div>
	</div>
</div>
<script>
	document.getElementById('contact-us').addEventListener('click', (e) => {
		e.preventDefault();
		setTimeout(() => document.querySelector('.contact-us-modal').classList.add('show'), 100);
	});
	const form = document.getElementById('{{.FormID}}');
	form.addEventListener('submit', (e) => {
		e.preventDefault();
		form.querySelectorAll('[required]').forEach((input) => {
			const wrapper = input.closest('.hs-form-field');
			if (!wrapper) {
				return;
			}
			const existing = wrapper.querySelector('.hs-error-msgs');
			if (input.value.trim() !== '') {
				if (existing) {
					existing.remove();
				}
				return;
			}
			if (!existing) {
				const msgs = document.createElement('ul');
				msgs.className = 'no-list hs-error-msgs inputs-list';
				msgs.innerHTML = '<li><label class="hs-error-msg hs-main-font-element">Please complete this required field.</label></li>';
				wrapper.appendChild(msgs);
			}
		});
	});
</script>
</body>
</html>
`))
