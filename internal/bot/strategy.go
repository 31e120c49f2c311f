package bot

import "autoapply-engine/internal/domain"

// Field is one logical form field with its ordered candidate selectors.
// Selectors are tried until one is visible and fillable; the rest of the
// list is skipped.
type Field struct {
	Label     string
	Selectors []string
	Value     string
	// Required fields failing to fill terminate the attempt. Only the name
	// field is required; everything else is best-effort.
	Required bool
}

// Strategy bundles the fill plan and submit candidates for one ATS family.
type Strategy struct {
	Fields []Field
	Submit []string
}

// BuildStrategy returns the named selector plan for a platform, with values
// already bound from the applicant profile and cover text.
func BuildStrategy(p Platform, profile domain.Profile, coverText string) Strategy {
	switch p {
	case PlatformGreenhouse:
		return Strategy{
			Fields: []Field{
				{Label: "first_name", Required: true, Value: profile.FirstName, Selectors: []string{
					"#first_name", "input[name='job_application[first_name]']", "input[autocomplete='given-name']",
				}},
				{Label: "last_name", Value: profile.LastName, Selectors: []string{
					"#last_name", "input[name='job_application[last_name]']", "input[autocomplete='family-name']",
				}},
				{Label: "email", Value: profile.Email, Selectors: []string{
					"#email", "input[name='job_application[email]']", "input[type='email']",
				}},
				{Label: "phone", Value: profile.Phone, Selectors: []string{
					"#phone", "input[name='job_application[phone]']", "input[type='tel']",
				}},
				{Label: "linkedin", Value: profile.LinkedInURL, Selectors: []string{
					"input[name*='linkedin' i]", "input[id*='linkedin' i]",
				}},
				{Label: "cover_letter", Value: coverText, Selectors: []string{
					"#cover_letter_text", "textarea[name='job_application[cover_letter_text]']", "textarea",
				}},
			},
			Submit: []string{
				"#submit_app", "input[type='submit']", "button[type='submit']",
			},
		}

	case PlatformLever:
		return Strategy{
			Fields: []Field{
				{Label: "name", Required: true, Value: fullName(profile), Selectors: []string{
					"input[name='name']", ".application-field input[name='name']",
				}},
				{Label: "email", Value: profile.Email, Selectors: []string{
					"input[name='email']", "input[type='email']",
				}},
				{Label: "phone", Value: profile.Phone, Selectors: []string{
					"input[name='phone']", "input[type='tel']",
				}},
				{Label: "linkedin", Value: profile.LinkedInURL, Selectors: []string{
					"input[name='urls[LinkedIn]']", "input[name*='linkedin' i]",
				}},
				{Label: "github", Value: profile.GitHubURL, Selectors: []string{
					"input[name='urls[GitHub]']", "input[name*='github' i]",
				}},
				{Label: "cover_letter", Value: coverText, Selectors: []string{
					"textarea[name='comments']", "textarea",
				}},
			},
			Submit: []string{
				"#btn-submit", "button[type='submit']", ".template-btn-submit",
			},
		}

	case PlatformWorkday:
		return Strategy{
			Fields: []Field{
				{Label: "first_name", Required: true, Value: profile.FirstName, Selectors: []string{
					"input[data-automation-id='legalNameSection_firstName']", "input[name*='firstName' i]",
				}},
				{Label: "last_name", Value: profile.LastName, Selectors: []string{
					"input[data-automation-id='legalNameSection_lastName']", "input[name*='lastName' i]",
				}},
				{Label: "email", Value: profile.Email, Selectors: []string{
					"input[data-automation-id='email']", "input[type='email']",
				}},
				{Label: "phone", Value: profile.Phone, Selectors: []string{
					"input[data-automation-id='phone-number']", "input[type='tel']",
				}},
			},
			Submit: []string{
				"button[data-automation-id='bottom-navigation-next-button']",
				"button[data-automation-id='applyButton']",
				"button[type='submit']",
			},
		}

	case PlatformAshby:
		return Strategy{
			Fields: []Field{
				{Label: "name", Required: true, Value: fullName(profile), Selectors: []string{
					"input[name='_systemfield_name']", "input[id*='name' i]",
				}},
				{Label: "email", Value: profile.Email, Selectors: []string{
					"input[name='_systemfield_email']", "input[type='email']",
				}},
				{Label: "phone", Value: profile.Phone, Selectors: []string{
					"input[name*='phone' i]", "input[type='tel']",
				}},
				{Label: "linkedin", Value: profile.LinkedInURL, Selectors: []string{
					"input[name*='linkedin' i]",
				}},
			},
			Submit: []string{
				"button.ashby-application-form-submit-button", "button[type='submit']",
			},
		}

	default:
		// Heuristic attribute/placeholder matching across the same logical
		// fields for forms we have never seen.
		return Strategy{
			Fields: []Field{
				{Label: "first_name", Required: true, Value: profile.FirstName, Selectors: []string{
					"input[name*='first' i]", "input[id*='first' i]", "input[placeholder*='first name' i]",
					"input[autocomplete='given-name']", "input[name='name']", "input[placeholder*='name' i]",
				}},
				{Label: "last_name", Value: profile.LastName, Selectors: []string{
					"input[name*='last' i]", "input[id*='last' i]", "input[placeholder*='last name' i]",
					"input[autocomplete='family-name']",
				}},
				{Label: "email", Value: profile.Email, Selectors: []string{
					"input[type='email']", "input[name*='email' i]", "input[placeholder*='email' i]",
				}},
				{Label: "phone", Value: profile.Phone, Selectors: []string{
					"input[type='tel']", "input[name*='phone' i]", "input[placeholder*='phone' i]",
				}},
				{Label: "linkedin", Value: profile.LinkedInURL, Selectors: []string{
					"input[name*='linkedin' i]", "input[placeholder*='linkedin' i]",
				}},
				{Label: "cover_letter", Value: coverText, Selectors: []string{
					"textarea[name*='cover' i]", "textarea[placeholder*='cover' i]", "textarea",
				}},
			},
			Submit: []string{
				"button[type='submit']", "input[type='submit']",
				"button[name*='submit' i]", "button[id*='submit' i]",
				"button[class*='submit' i]", "button[class*='apply' i]",
			},
		}
	}
}

func fullName(p domain.Profile) string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
