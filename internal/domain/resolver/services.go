package resolver

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"panda-menu/internal/domain/entity"
)

// GenericServiceIcon is used for service keys missing from the known table.
const GenericServiceIcon = "🔗"

var knownServices = []entity.ServiceInfo{
	{Key: "dora", Name: "Dora", Icon: "🔍"},
	{Key: "explorer", Name: "Explorer", Icon: "🌐"},
	{Key: "beaconRpc", Name: "Beacon RPC", Icon: "📡"},
	{Key: "executionRpc", Name: "Execution RPC", Icon: "⚡"},
	{Key: "forkmon", Name: "Forkmon", Icon: "🍴"},
	{Key: "assertoor", Name: "Assertoor", Icon: "✅"},
	{Key: "tracoor", Name: "Tracoor", Icon: "📊"},
	{Key: "syncoor", Name: "Syncoor", Icon: "🔄"},
	{Key: "ethstats", Name: "Ethstats", Icon: "📈"},
	{Key: "checkpointSync", Name: "Checkpoint Sync", Icon: "🎯"},
	{Key: "blobscan", Name: "Blobscan", Icon: "🫧"},
	{Key: "spamoor", Name: "Spamoor", Icon: "📨"},
	{Key: "devnetSpec", Name: "Specs", Icon: "📋"},
}

var knownServicesByKey = func() map[string]entity.ServiceInfo {
	m := make(map[string]entity.ServiceInfo, len(knownServices))
	for _, svc := range knownServices {
		m[svc.Key] = svc
	}
	return m
}()

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	wordStart     = regexp.MustCompile(`\b\w`)
)

// FormatServiceKey turns camelCase or kebab-case keys into title-cased words.
func FormatServiceKey(key string) string {
	name := camelBoundary.ReplaceAllString(key, "$1 $2")
	name = strings.ReplaceAll(name, "-", " ")
	return wordStart.ReplaceAllStringFunc(name, strings.ToUpper)
}

// ServiceInfoFor resolves display info for a service key, synthesizing it when unknown.
func ServiceInfoFor(key string) entity.ServiceInfo {
	if info, ok := knownServicesByKey[key]; ok {
		return info
	}
	return entity.ServiceInfo{
		Key:  key,
		Name: FormatServiceKey(key),
		Icon: GenericServiceIcon,
	}
}

// Service is a displayable service of a network.
type Service struct {
	entity.ServiceInfo
	URL string
}

// AvailableServices lists the services of network that have a URL, sorted by display name.
func AvailableServices(network entity.Network) []Service {
	services := make([]Service, 0, len(network.ServiceURLs))
	for _, svc := range network.ServiceURLs {
		if svc.URL == "" {
			continue
		}
		services = append(services, Service{ServiceInfo: ServiceInfoFor(svc.Key), URL: svc.URL})
	}

	collator := collate.New(language.English)
	slices.SortStableFunc(services, func(a, b Service) int {
		return collator.CompareString(a.Name, b.Name)
	})
	return services
}

// NetworkDisplayName returns the label of a network. Standalone testnets are shown by their
// capitalized key, everything else by its registry name.
func NetworkDisplayName(networkKey string, network entity.Network) string {
	if IsStandaloneNetwork(networkKey) {
		r, size := utf8.DecodeRuneInString(networkKey)
		if r == utf8.RuneError {
			return networkKey
		}
		return string(unicode.ToUpper(r)) + networkKey[size:]
	}
	if network.Name != "" {
		return network.Name
	}
	return networkKey
}
