package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetRooms(t *testing.T) {
	offer := &Offer{TargetRooms: `{"room_types": ["deluxe", "suite"], "room_ids": [3]}`}

	target, err := offer.ParseTargetRooms()
	require.NoError(t, err)
	assert.Equal(t, []string{"deluxe", "suite"}, target.RoomTypes)
	assert.Equal(t, []int{3}, target.RoomIDs)
	assert.False(t, target.IsEmpty())
}

func TestParseTargetRoomsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "{}", `{"room_types": [], "room_ids": []}`} {
		offer := &Offer{TargetRooms: raw}
		target, err := offer.ParseTargetRooms()
		require.NoError(t, err, "raw %q", raw)
		assert.True(t, target.IsEmpty(), "raw %q", raw)
	}
}

func TestParseTargetRoomsMalformed(t *testing.T) {
	offer := &Offer{TargetRooms: `{"room_ids": "three"}`}
	_, err := offer.ParseTargetRooms()
	assert.Error(t, err)
}

func TestOfferJSONExposesRoomTargeting(t *testing.T) {
	offer := &Offer{Code: "SUITE10", TargetRooms: `{"room_types": ["suite"]}`}

	encoded, err := json.Marshal(offer)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"targetRooms"`)

	var decoded Offer
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, offer.TargetRooms, decoded.TargetRooms)

	// An offer without targeting omits the field.
	plain, err := json.Marshal(&Offer{Code: "PLAIN"})
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "targetRooms")
}

func TestRoomTargetMatchesRoom(t *testing.T) {
	room := &Room{ID: 3, RoomType: "standard"}

	// Empty targeting matches every room.
	assert.True(t, RoomTarget{}.MatchesRoom(room))

	// An id hit qualifies regardless of the type list.
	byID := RoomTarget{RoomTypes: []string{"suite"}, RoomIDs: []int{3}}
	assert.True(t, byID.MatchesRoom(room))

	byType := RoomTarget{RoomTypes: []string{"standard"}}
	assert.True(t, byType.MatchesRoom(room))

	miss := RoomTarget{RoomTypes: []string{"suite"}, RoomIDs: []int{9}}
	assert.False(t, miss.MatchesRoom(room))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SUMMER20", NormalizeCode("  summer20 "))
	assert.Equal(t, "VIP_GOLD", NormalizeCode("vip_gold"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestGuestProfileMatchesUserType(t *testing.T) {
	newGuest := &GuestProfile{CompletedStays: 0}
	returning := &GuestProfile{CompletedStays: 2}
	vip := &GuestProfile{CompletedStays: 3}

	assert.True(t, newGuest.MatchesUserType(TargetAllUsers))
	assert.True(t, newGuest.MatchesUserType(TargetNewUser))
	assert.False(t, newGuest.MatchesUserType(TargetReturningUser))

	assert.True(t, returning.MatchesUserType(TargetReturningUser))
	assert.False(t, returning.MatchesUserType(TargetVIP))

	// A vip is also a returning guest; the segments nest upward.
	assert.True(t, vip.MatchesUserType(TargetVIP))
	assert.True(t, vip.MatchesUserType(TargetReturningUser))

	// Unknown segments never match.
	assert.False(t, vip.MatchesUserType(TargetUserType("platinum")))
}
