package plex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/plexkit/internal/domain"
)

func deviceFixture(clientID, provides string, uris ...string) map[string]any {
	connections := make([]any, 0, len(uris))
	for _, uri := range uris {
		connections = append(connections, map[string]any{
			"$": map[string]any{
				"protocol": "https",
				"address":  "10.0.0.2",
				"port":     "32400",
				"uri":      uri,
				"local":    "1",
			},
		})
	}
	return map[string]any{
		"$": map[string]any{
			"name":             "Living Room",
			"product":          "Plex Media Server",
			"clientIdentifier": clientID,
			"provides":         provides,
			"owned":            "1",
			"presence":         "0",
			"createdAt":        "1500000000",
		},
		"Connection": connections,
	}
}

func TestDevice_AttributeConvention(t *testing.T) {
	device, warnings := newTestParser().Device(deviceFixture("abc123", "server,player", "https://10-0-0-2.plex.direct:32400"))

	assert.Empty(t, warnings)
	assert.Equal(t, domain.KindDevice, device.Kind)
	assert.Equal(t, "abc123", device.ID)
	assert.Equal(t, []string{"server", "player"}, device.Provides)
	assert.True(t, device.Provider("server"))
	assert.False(t, device.Provider("controller"))
	assert.True(t, *device.Owned)
	assert.False(t, *device.Presence)
	assert.Nil(t, device.Relay)
	require.NotNil(t, device.CreatedAt)
	assert.Equal(t, 2017, device.CreatedAt.Year())

	require.Len(t, device.Connections, 1)
	conn := device.Connections[0]
	assert.Equal(t, domain.KindConnection, conn.Kind)
	assert.Equal(t, "https://10-0-0-2.plex.direct:32400", conn.URI)
	assert.Equal(t, int64(32400), *conn.Port)
	assert.True(t, *conn.Local)
}

func TestDevice_JSONAttributes(t *testing.T) {
	raw := map[string]any{
		"clientIdentifier": "def456",
		"provides":         "player",
	}

	device, warnings := newTestParser().Device(raw)

	assert.Empty(t, warnings)
	assert.Equal(t, "def456", device.ID)
	assert.Empty(t, device.Connections)
}

func TestDevice_MissingProvides(t *testing.T) {
	device, warnings := newTestParser().Device(map[string]any{
		"$": map[string]any{"clientIdentifier": "x"},
	})

	assert.Equal(t, []string{}, device.Provides)
	require.Len(t, warnings, 1)
	assert.Equal(t, "$.provides", warnings[0].Path)
}

func TestResourceContainer(t *testing.T) {
	body := map[string]any{
		"MediaContainer": map[string]any{
			"$": map[string]any{"size": "2"},
			"Device": []any{
				deviceFixture("server1", "server", "https://a:32400", "http://b:32400"),
				deviceFixture("phone", "player,controller"),
			},
		},
	}

	resources, warnings := newTestParser().ResourceContainer(body)

	assert.Empty(t, warnings)
	require.NotNil(t, resources.Size)
	assert.Equal(t, int64(2), *resources.Size)
	require.NotNil(t, resources.TotalSize)
	assert.Equal(t, int64(2), *resources.TotalSize)
	require.Len(t, resources.Devices, 2)
	assert.Len(t, resources.Devices[0].Connections, 2)
	assert.Empty(t, resources.Devices[1].Connections)
}

func TestDeviceContainer_WithoutSize(t *testing.T) {
	body := map[string]any{
		"MediaContainer": map[string]any{
			"Device": deviceFixture("phone", "player"),
		},
	}

	devices, warnings := newTestParser().DeviceContainer(body)

	assert.Empty(t, warnings)
	assert.Nil(t, devices.Size)
	assert.Nil(t, devices.TotalSize)
	require.Len(t, devices.Devices, 1)
	assert.Equal(t, "phone", devices.Devices[0].ID)
}

func TestUser(t *testing.T) {
	body := map[string]any{
		"id":           float64(1234),
		"uuid":         "u-1",
		"username":     "listener",
		"title":        "Listener",
		"email":        "listener@example.com",
		"authToken":    "token",
		"home":         true,
		"entitlements": []any{"ios", "android"},
		"services": []any{
			map[string]any{"identifier": "metadata", "endpoint": "https://metadata.provider.plex.tv", "status": "online"},
		},
		"subscriptions": map[string]any{
			"state":    "active",
			"renewsAt": "2030-01-01T00:00:00Z",
		},
	}

	user, warnings := newTestParser().User(body)

	assert.Empty(t, warnings)
	assert.Equal(t, int64(1234), *user.ID)
	assert.True(t, *user.Home)
	assert.Equal(t, []string{"ios", "android"}, user.Entitlements)
	require.Len(t, user.Services, 1)
	assert.Equal(t, "online", user.Services[0].Status)
	require.Len(t, user.Subscriptions, 1)
	require.NotNil(t, user.Subscriptions[0].RenewsAt)
	assert.Equal(t, 2030, user.Subscriptions[0].RenewsAt.Year())
}

func TestPin(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "v2",
			body: map[string]any{
				"id":               float64(42),
				"code":             "ABCD",
				"clientIdentifier": "plexkit",
				"expiresAt":        "2030-01-01T00:00:00Z",
				"authToken":        "secret",
			},
		},
		{
			name: "legacy",
			body: map[string]any{
				"pin": map[string]any{
					"id":                float64(42),
					"code":              "ABCD",
					"client_identifier": "plexkit",
					"expires_at":        "2030-01-01T00:00:00Z",
					"auth_token":        "secret",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin, warnings := newTestParser().Pin(tt.body)

			assert.Empty(t, warnings)
			assert.Equal(t, int64(42), *pin.ID)
			assert.Equal(t, "ABCD", pin.Code)
			assert.Equal(t, "plexkit", pin.ClientIdentifier)
			assert.Equal(t, "secret", pin.AuthToken)
			require.NotNil(t, pin.ExpiresAt)
			assert.Equal(t, 2030, pin.ExpiresAt.Year())
		})
	}
}

func TestPin_UnclaimedHasNoToken(t *testing.T) {
	pin, warnings := newTestParser().Pin(map[string]any{
		"id":               float64(42),
		"code":             "ABCD",
		"clientIdentifier": "plexkit",
		"expiresAt":        "2030-01-01T00:00:00Z",
		"authToken":        nil,
	})

	assert.Empty(t, warnings)
	assert.Equal(t, "", pin.AuthToken)
}
