package sai

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouteEntryRoundTrip(t *testing.T) {
	r := RouteEntry{
		VRID:   PackVID(ObjectTypeVirtualRouter, 3),
		Prefix: net.ParseIP("10.0.0.0"),
		Mask:   net.ParseIP("255.255.255.0"),
	}
	parsed, err := ParseRouteEntry(r.String())
	require.NoError(t, err)
	require.Equal(t, r.VRID, parsed.VRID)
	require.True(t, r.Prefix.Equal(parsed.Prefix))
	require.True(t, r.Mask.Equal(parsed.Mask))
}

func TestNeighborEntryRoundTrip(t *testing.T) {
	n := NeighborEntry{
		RIFID: PackVID(ObjectTypeRouterInterface, 9),
		IP:    net.ParseIP("10.0.0.1"),
	}
	parsed, err := ParseNeighborEntry(n.String())
	require.NoError(t, err)
	require.Equal(t, n.RIFID, parsed.RIFID)
	require.True(t, n.IP.Equal(parsed.IP))
}

func TestFDBEntryRoundTrip(t *testing.T) {
	mac, err := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	f := FDBEntry{MAC: mac, Vlan: 100}
	parsed, err := ParseFDBEntry(f.String())
	require.NoError(t, err)
	require.Equal(t, f.MAC.String(), parsed.MAC.String())
	require.Equal(t, f.Vlan, parsed.Vlan)
}
