package domain

import "errors"

var (
	// ErrRegistryNotLoaded means the registry has not been fetched yet.
	ErrRegistryNotLoaded = errors.New("registry not loaded")

	// ErrNetworkNotFound means the requested network is not in the registry or not active.
	ErrNetworkNotFound = errors.New("network not found")

	// ErrInvalidPageURL means the page location supplied by the caller could not be parsed.
	ErrInvalidPageURL = errors.New("invalid page url")
)
