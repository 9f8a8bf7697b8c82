package qubika

import "fmt"

// Selectors of the marketing site. They follow the markup of the live page.
const (
	LogoSelector         = "body > div.overflower > header > div.content > a.logo"
	ContactUsSelector    = "body > div.overflower > section.hero.active > div.content.text-intro > div > a"
	ContactModalSelector = "body > div.overflower > div.modal.contact-us-modal.show > div"

	// ContactFormID is the id of the HubSpot form instance inside the contact modal.
	ContactFormID  = "hsForm_5e204c31-ede2-4976-a096-6919a081b2df"
	SubmitSelector = "#" + ContactFormID + " > div.hs_submit.hs-submit > div.actions > input"
)

// Field names of the contact form.
const (
	FirstNameField = "firstname"
	LastNameField  = "lastname"
	EmailField     = "email"
)

// FieldSelector matches a form field by its name attribute.
func FieldSelector(name string) string {
	return fmt.Sprintf(`[name=%q]`, name)
}
