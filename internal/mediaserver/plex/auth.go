package plex

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mmcdole/plexkit/internal/accessor"
	"github.com/mmcdole/plexkit/internal/coerce"
	"github.com/mmcdole/plexkit/internal/domain"
)

const (
	userEndpoint      = "/api/v2/user"
	pinEndpoint       = "/api/v2/pins"
	resourcesEndpoint = "/api/resources"
	devicesEndpoint   = "/devices.xml"
	syncItemsEndpoint = "/devices/%s/sync_items"
)

func toConnection(v accessor.Value) *domain.Connection {
	attrs := attributes(v)

	return &domain.Connection{
		Kind:     domain.KindConnection,
		Protocol: coerce.String(attrs.Optional("protocol")),
		Address:  coerce.String(attrs.Optional("address")),
		Port:     coerce.Number(attrs.Optional("port")),
		URI:      coerce.String(attrs.Get("uri")),
		Local:    coerce.Boolean(attrs.Optional("local")),
	}
}

func toDevice(v accessor.Value) *domain.Device {
	attrs := attributes(v)
	clientID := attrs.Get("clientIdentifier")

	return &domain.Device{
		Kind: domain.KindDevice,
		ID:   coerce.String(clientID),

		Name:                   coerce.String(attrs.Optional("name")),
		Product:                coerce.String(attrs.Optional("product")),
		ProductVersion:         coerce.String(attrs.Optional("productVersion")),
		Platform:               coerce.String(attrs.Optional("platform")),
		PlatformVersion:        coerce.String(attrs.Optional("platformVersion")),
		Device:                 coerce.String(attrs.Optional("device")),
		ClientIdentifier:       coerce.String(clientID),
		AccessToken:            coerce.String(attrs.Optional("accessToken")),
		PublicAddress:          coerce.String(attrs.Optional("publicAddress")),
		Provides:               coerce.Strings(attrs.Get("provides")),
		Owned:                  coerce.Boolean(attrs.Optional("owned")),
		HTTPSRequired:          coerce.Boolean(attrs.Optional("httpsRequired")),
		Synced:                 coerce.Boolean(attrs.Optional("synced")),
		Relay:                  coerce.Boolean(attrs.Optional("relay")),
		DNSRebindingProtection: coerce.Boolean(attrs.Optional("dnsRebindingProtection")),
		NATLoopbackSupported:   coerce.Boolean(attrs.Optional("natLoopbackSupported")),
		PublicAddressMatches:   coerce.Boolean(attrs.Optional("publicAddressMatches")),
		Presence:               coerce.Boolean(attrs.Optional("presence")),

		CreatedAt:  coerce.DateFromSeconds(attrs.Optional("createdAt")),
		LastSeenAt: coerce.DateFromSeconds(attrs.Optional("lastSeenAt")),

		Connections: mapArray(v.Optional("Connection"), toConnection),
	}
}

func toResourceContainer(v accessor.Value) *domain.ResourceContainer {
	v = unwrap(v)

	return &domain.ResourceContainer{
		Kind:           domain.KindResourceContainer,
		MediaContainer: toOptionalMediaContainer(attributes(v)),
		Devices:        mapArray(v.Get("Device"), toDevice),
	}
}

func toDeviceContainer(v accessor.Value) *domain.DeviceContainer {
	v = unwrap(v)

	return &domain.DeviceContainer{
		Kind:           domain.KindDeviceContainer,
		MediaContainer: toOptionalMediaContainer(attributes(v)),
		Devices:        mapArray(v.Get("Device"), toDevice),
	}
}

// toInstant reads a time that is either epoch seconds or a date string.
func toInstant(v accessor.Value) *time.Time {
	if _, ok := v.Raw().(string); ok {
		if t := coerce.Date(v); t != nil {
			return t
		}
	}
	return coerce.DateFromSeconds(v)
}

func toService(v accessor.Value) domain.Service {
	return domain.Service{
		Identifier: coerce.String(v.Get("identifier")),
		Endpoint:   coerce.String(v.Get("endpoint")),
		Token:      coerce.String(v.Optional("token")),
		Status:     coerce.String(v.Get("status")),
	}
}

func toSubscription(v accessor.Value) domain.Subscription {
	return domain.Subscription{
		ID:       coerce.String(v.Optional("id")),
		Mode:     coerce.String(v.Optional("mode")),
		Type:     coerce.String(v.Optional("type")),
		State:    coerce.String(v.Get("state")),
		Transfer: coerce.Boolean(v.Optional("transfer")),
		RenewsAt: toInstant(v.Optional("renewsAt")),
		EndsAt:   toInstant(v.Optional("endsAt")),
	}
}

func toUser(v accessor.Value) *domain.User {
	if v.Has("user") {
		v = v.Get("user")
	}

	return &domain.User{
		Kind: domain.KindUser,
		ID:   coerce.Number(v.Get("id")),

		UUID:                    coerce.String(v.Get("uuid")),
		Username:                coerce.String(v.Get("username")),
		Title:                   coerce.String(v.Get("title")),
		Email:                   coerce.String(v.Get("email")),
		Thumb:                   coerce.String(v.Optional("thumb")),
		AuthToken:               coerce.String(v.Get("authToken")),
		Country:                 coerce.String(v.Optional("country")),
		Locale:                  coerce.String(v.Optional("locale")),
		MailingListStatus:       coerce.String(v.Optional("mailingListStatus")),
		QueueEmail:              coerce.String(v.Optional("queueEmail")),
		QueueUID:                coerce.String(v.Optional("queueUid")),
		ScrobbleTypes:           coerce.String(v.Optional("scrobbleTypes")),
		SubscriptionDescription: coerce.String(v.Optional("subscriptionDescription")),
		CertificateVersion:      coerce.Number(v.Optional("certificateVersion")),
		HomeSize:                coerce.Number(v.Optional("homeSize")),
		MaxHomeSize:             coerce.Number(v.Optional("maxHomeSize")),
		EmailOnlyAuth:           coerce.Boolean(v.Optional("emailOnlyAuth")),
		Guest:                   coerce.Boolean(v.Optional("guest")),
		HasPassword:             coerce.Boolean(v.Optional("hasPassword")),
		Home:                    coerce.Boolean(v.Optional("home")),
		HomeAdmin:               coerce.Boolean(v.Optional("homeAdmin")),
		MailingListActive:       coerce.Boolean(v.Optional("mailingListActive")),
		Protected:               coerce.Boolean(v.Optional("protected")),
		Restricted:              coerce.Boolean(v.Optional("restricted")),
		Entitlements:            mapArray(v.Optional("entitlements"), coerce.String),

		RememberExpiresAt: coerce.DateFromSeconds(v.Optional("rememberExpiresAt")),

		Services:      mapArray(v.Optional("services"), toService),
		Subscriptions: mapArray(v.Optional("subscriptions"), toSubscription),
	}
}

// toPin accepts both the v2 camelCase and the legacy snake_case pin bodies.
func toPin(v accessor.Value) *domain.Pin {
	if v.Has("pin") {
		v = v.Get("pin")
	}

	return &domain.Pin{
		Kind: domain.KindPin,
		ID:   coerce.Number(v.Get("id")),

		Code:             coerce.String(v.Get("code")),
		ClientIdentifier: coerce.String(firstOf(v, "clientIdentifier", "client_identifier")),
		AuthToken:        coerce.String(optionalOf(v, "authToken", "auth_token")),
		UserID:           coerce.Number(optionalOf(v, "userId", "user_id")),
		ExpiresAt:        coerce.Date(firstOf(v, "expiresAt", "expires_at")),
	}
}

// Account reads plex.tv account endpoints through a Fetcher.
type Account struct {
	fetcher Fetcher
	parser  *Parser
	logger  *slog.Logger
}

// NewAccount creates an account reader. The fetcher is expected to be
// rooted at plex.tv.
func NewAccount(fetcher Fetcher, logger *slog.Logger) *Account {
	if logger == nil {
		logger = slog.Default()
	}
	return &Account{
		fetcher: fetcher,
		parser:  NewParser(logger),
		logger:  logger,
	}
}

// User returns the signed-in account.
func (a *Account) User(ctx context.Context) (*domain.User, error) {
	body, err := fetch(ctx, a.fetcher, a.logger, userEndpoint, nil)
	if err != nil {
		return nil, err
	}
	user, _ := a.parser.User(body)
	return user, nil
}

// CheckPin polls a link code. AuthToken is set once the code was claimed.
func (a *Account) CheckPin(ctx context.Context, pinID int64) (*domain.Pin, error) {
	body, err := fetch(ctx, a.fetcher, a.logger, fmt.Sprintf("%s/%d", pinEndpoint, pinID), nil)
	if err != nil {
		return nil, err
	}
	pin, _ := a.parser.Pin(body)
	return pin, nil
}

// Resources returns every device linked to the account with its connections.
func (a *Account) Resources(ctx context.Context) (*domain.ResourceContainer, error) {
	query := url.Values{}
	query.Set("includeHttps", "1")
	query.Set("includeRelay", "1")

	body, err := fetch(ctx, a.fetcher, a.logger, resourcesEndpoint, query)
	if err != nil {
		return nil, err
	}
	resources, _ := a.parser.ResourceContainer(body)
	return resources, nil
}

// Servers returns the resources that provide a media server.
func (a *Account) Servers(ctx context.Context) (*domain.ResourceContainer, error) {
	resources, err := a.Resources(ctx)
	if err != nil {
		return nil, err
	}

	servers := make([]*domain.Device, 0, len(resources.Devices))
	for _, d := range resources.Devices {
		if d.Provider("server") {
			servers = append(servers, d)
		}
	}
	resources.Devices = servers
	return resources, nil
}

// Devices returns every device registered to the account.
func (a *Account) Devices(ctx context.Context) (*domain.DeviceContainer, error) {
	body, err := fetch(ctx, a.fetcher, a.logger, devicesEndpoint, nil)
	if err != nil {
		return nil, err
	}
	devices, _ := a.parser.DeviceContainer(body)
	return devices, nil
}

// SyncItems returns the items queued for offline sync to a device.
func (a *Account) SyncItems(ctx context.Context, deviceID string) (*domain.SyncList, error) {
	path := fmt.Sprintf(syncItemsEndpoint, url.PathEscape(deviceID))
	body, err := fetch(ctx, a.fetcher, a.logger, path, nil)
	if err != nil {
		return nil, err
	}
	list, _ := a.parser.SyncList(body)
	return list, nil
}
