package hoststyle

import (
	"regexp"

	"panda-menu/internal/domain/theme"
)

const floatingButtonAbsolute = `.panda-menu-button {
  position: absolute !important;
}`

// DefaultRules returns the built-in table for the ethPandaOps hosts.
func DefaultRules() Rules {
	return Rules{
		{
			// homepage
			Pattern:  regexp.MustCompile(`^(www\.)?ethpandaops\.io$`),
			AttachTo: "nav div.navbar__logo",
			HostCSS: `#panda-menu-root {
  height: 60px !important;
}`,
		},
		{
			Pattern:      regexp.MustCompile(`^(www\.)?lab\.ethpandaops\.io$`),
			AttachTo:     `a > img[alt="Lab Logo"]`,
			AttachParent: 1,
		},
		{
			// dora, spamoor and dugtrio share a bootstrap navbar
			Pattern: regexp.MustCompile(`^(dora|spamoor|beacon)\..*\.ethpandaops\.io$`),
			HostCSS: `@media (max-width: 576px) {
  .navbar-brand > svg {
    display: none;
  }
  .navbar-brand {
    padding-left: 60px;
  }
}
@media (min-width: 577px) {
  nav.navbar {
    padding-left: 60px;
    padding-right: 60px;
  }
}`,
		},
		{
			Pattern: regexp.MustCompile(`^assertoor\..*\.ethpandaops\.io$`),
			HostCSS: `.navbar-brand {
  padding-left: 70px !important;
}`,
		},
		{
			Pattern:          regexp.MustCompile(`^tracoor\..*\.ethpandaops\.io$`),
			DefaultColorMode: theme.ColorModeLight,
			HostCSS: `header {
  padding-left: 50px !important;
}`,
			MenuCSS: floatingButtonAbsolute,
		},
		{
			Pattern: regexp.MustCompile(`^syncoor\..*\.ethpandaops\.io$`),
			HostCSS: `header {
  padding-left: 70px !important;
}
@media (max-width: 576px) {
  header a > img {
    display: none;
  }
}
@media (min-width: 577px) {
  header {
    padding-right: 70px !important;
  }
}`,
		},
		{
			Pattern:          regexp.MustCompile(`^ethstats\..*\.ethpandaops\.io$`),
			DefaultColorMode: theme.ColorModeDark,
		},
		{
			Pattern:          regexp.MustCompile(`^checkpoint-sync\..*\.ethpandaops\.io$`),
			DefaultColorMode: theme.ColorModeLight,
			HostCSS: `header {
  padding-left: 50px !important;
}
@media (min-width: 577px) {
  header {
    padding-right: 50px !important;
  }
}`,
			MenuCSS: floatingButtonAbsolute,
		},
		{
			Pattern:          regexp.MustCompile(`^forky\..*\.ethpandaops\.io$`),
			DefaultColorMode: theme.ColorModeLight,
			HostCSS: `header nav {
  padding-left: 70px;
}`,
			MenuCSS: `.panda-menu-button {
  z-index: 20 !important;
}`,
		},
		{
			// catch-all for every other subdomain
			Pattern: regexp.MustCompile(`\.ethpandaops\.io$`),
			HostCSS: `/* generic panda-menu spacing */`,
		},
	}
}
