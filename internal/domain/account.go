package domain

import "time"

// Device is an account-linked endpoint. ID is its client identifier.
type Device struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`

	Name                   string   `json:"name"`
	Product                string   `json:"product"`
	ProductVersion         string   `json:"productVersion"`
	Platform               string   `json:"platform"`
	PlatformVersion        string   `json:"platformVersion"`
	Device                 string   `json:"device"`
	ClientIdentifier       string   `json:"clientIdentifier"`
	AccessToken            string   `json:"accessToken"`
	PublicAddress          string   `json:"publicAddress"`
	Provides               []string `json:"provides"`
	Owned                  *bool    `json:"owned"`
	HTTPSRequired          *bool    `json:"httpsRequired"`
	Synced                 *bool    `json:"synced"`
	Relay                  *bool    `json:"relay"`
	DNSRebindingProtection *bool    `json:"dnsRebindingProtection"`
	NATLoopbackSupported   *bool    `json:"natLoopbackSupported"`
	PublicAddressMatches   *bool    `json:"publicAddressMatches"`
	Presence               *bool    `json:"presence"`

	CreatedAt  *time.Time `json:"createdAt"`
	LastSeenAt *time.Time `json:"lastSeenAt"`

	Connections []*Connection `json:"connections"`
}

// Provider reports whether the device advertises the given capability,
// e.g. "server" or "player".
func (d *Device) Provider(capability string) bool {
	for _, p := range d.Provides {
		if p == capability {
			return true
		}
	}
	return false
}

// Connection is one address at which a Device is reachable.
// Its identity is URI.
type Connection struct {
	Kind     Kind   `json:"kind"`
	Protocol string `json:"protocol"`
	Address  string `json:"address"`
	Port     *int64 `json:"port"`
	URI      string `json:"uri"`
	Local    *bool  `json:"local"`
}

// ResourceContainer is the body of the account resources listing.
type ResourceContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	Devices []*Device `json:"devices"`
}

// DeviceContainer is the body of the account device listing.
type DeviceContainer struct {
	Kind Kind `json:"kind"`
	MediaContainer

	Devices []*Device `json:"devices"`
}

// User is the signed-in account.
type User struct {
	Kind Kind   `json:"kind"`
	ID   *int64 `json:"id"`

	UUID                    string   `json:"uuid"`
	Username                string   `json:"username"`
	Title                   string   `json:"title"`
	Email                   string   `json:"email"`
	Thumb                   string   `json:"thumb"`
	AuthToken               string   `json:"authToken"`
	Country                 string   `json:"country"`
	Locale                  string   `json:"locale"`
	MailingListStatus       string   `json:"mailingListStatus"`
	QueueEmail              string   `json:"queueEmail"`
	QueueUID                string   `json:"queueUid"`
	ScrobbleTypes           string   `json:"scrobbleTypes"`
	SubscriptionDescription string   `json:"subscriptionDescription"`
	CertificateVersion      *int64   `json:"certificateVersion"`
	HomeSize                *int64   `json:"homeSize"`
	MaxHomeSize             *int64   `json:"maxHomeSize"`
	EmailOnlyAuth           *bool    `json:"emailOnlyAuth"`
	Guest                   *bool    `json:"guest"`
	HasPassword             *bool    `json:"hasPassword"`
	Home                    *bool    `json:"home"`
	HomeAdmin               *bool    `json:"homeAdmin"`
	MailingListActive       *bool    `json:"mailingListActive"`
	Protected               *bool    `json:"protected"`
	Restricted              *bool    `json:"restricted"`
	Entitlements            []string `json:"entitlements"`

	RememberExpiresAt *time.Time `json:"rememberExpiresAt"`

	Services      []Service      `json:"services"`
	Subscriptions []Subscription `json:"subscriptions"`
}

// Service is a plex.tv service endpoint available to a User.
type Service struct {
	Identifier string `json:"identifier"`
	Endpoint   string `json:"endpoint"`
	Token      string `json:"token"`
	Status     string `json:"status"`
}

// Subscription is a plan attached to a User.
type Subscription struct {
	ID       string     `json:"id"`
	Mode     string     `json:"mode"`
	Type     string     `json:"type"`
	State    string     `json:"state"`
	Transfer *bool      `json:"transfer"`
	RenewsAt *time.Time `json:"renewsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

// Pin is a link code issued while pairing a client with an account.
type Pin struct {
	Kind Kind   `json:"kind"`
	ID   *int64 `json:"id"`

	Code             string     `json:"code"`
	ClientIdentifier string     `json:"clientIdentifier"`
	AuthToken        string     `json:"authToken"`
	UserID           *int64     `json:"userId"`
	ExpiresAt        *time.Time `json:"expiresAt"`
}
