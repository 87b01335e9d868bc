// Package common contains shared constants and sentinel errors used across
// stgmsg components.
package common

// AuthHeaderName is the HTTP header that carries the bearer session token.
const AuthHeaderName = "Authorization"

// ServiceType is the mDNS service type under which relay servers advertise
// themselves on the local network.
const ServiceType = "_stgmsg._tcp"

// ServiceDomain is the mDNS domain used for registration and browsing.
const ServiceDomain = "local."
