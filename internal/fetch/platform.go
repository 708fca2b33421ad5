package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

const (
	// PlatformUpwork is the Upwork freelance marketplace
	PlatformUpwork Platform = "upwork"
	// PlatformFreelancer is the Freelancer.com marketplace
	PlatformFreelancer Platform = "freelancer"
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

var hostPatterns = []struct {
	platform Platform
	suffixes []string
}{
	{PlatformUpwork, []string{"upwork.com"}},
	{PlatformFreelancer, []string{"freelancer.com"}},
	{PlatformGreenhouse, []string{"greenhouse.io"}},
	{PlatformLever, []string{"lever.co"}},
	{PlatformWorkday, []string{"workday.com", "myworkdayjobs.com"}},
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, p := range hostPatterns {
		for _, suffix := range p.suffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

// DisplayName returns the human-readable board name recorded on a job description.
// Unknown platforms return an empty string so the caller's default applies.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformUpwork:
		return "Upwork"
	case PlatformFreelancer:
		return "Freelancer"
	case PlatformGreenhouse:
		return "Greenhouse"
	case PlatformLever:
		return "Lever"
	case PlatformWorkday:
		return "Workday"
	default:
		return ""
	}
}

// PlatformContentSelectors returns content selectors tuned for a platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformUpwork:
		return []string{
			"[data-test='Description']",
			"[data-test='job-description-text']",
			".job-description",
			"section.air3-card-section",
			"main",
		}
	case PlatformFreelancer:
		return []string{
			".PageProjectViewLogout-detail",
			".Project-description",
			".project-details",
			"main",
		}
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns selectors for elements removed before extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		"[data-testid='application-form']",
		".eeo-statement",
		".legal-disclosure",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformUpwork:
		return append(common,
			"[data-test='proposals-tier']",
			"[data-test='about-client-container']",
			".air3-modal",
		)
	case PlatformFreelancer:
		return append(common,
			".PageProjectViewLogout-bidForm",
			".similar-projects",
		)
	case PlatformGreenhouse:
		return append(common,
			".application--wrapper",
			".voluntary-self-id",
			"#usa_self_id_section",
		)
	case PlatformLever:
		return append(common,
			".apply-section",
			".posting-apply",
		)
	case PlatformWorkday:
		return append(common,
			"[data-automation-id='applyButton']",
			".application-section",
		)
	default:
		return common
	}
}
