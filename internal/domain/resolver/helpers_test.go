package resolver

import "panda-menu/internal/domain/entity"

func network(status entity.NetworkStatus, homepage string, services ...string) entity.Network {
	n := entity.Network{Status: status, URL: homepage}
	for i := 0; i+1 < len(services); i += 2 {
		n.ServiceURLs = append(n.ServiceURLs, entity.ServiceURL{Key: services[i], URL: services[i+1]})
	}
	return n
}

func entry(key string, n entity.Network) entity.NetworkEntry {
	return entity.NetworkEntry{Key: key, Network: n}
}

func page(origin, hostname string) entity.PageLocation {
	return entity.PageLocation{Origin: origin, Hostname: hostname}
}

func keysOf(entries []entity.NetworkEntry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
