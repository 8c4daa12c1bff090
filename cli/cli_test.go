package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rking788/warmind-advisors/bungie"
)

const testBaseURL = "https://bungie.test/Platform"

func envelope(response string) string {
	return `{"ErrorCode": 1, "ErrorStatus": "Success", "Response": ` + response + `}`
}

const (
	searchPath  = "/Destiny/SearchDestinyPlayer/1/rking788/"
	accountPath = "/User/GetBungieAccount/4611/1/"
)

var playerBodies = map[string]string{
	searchPath: envelope(`[{"membershipId": "4611", "membershipType": 1, "displayName": "rking788"}]`),
	accountPath: envelope(`{"destinyAccounts": [{"grimoireScore": 4215, "characters": [
		{"characterId": "c1", "classType": 0, "dateLastPlayed": "2017-08-01T10:00:00Z"},
		{"characterId": "c2", "classType": 2, "dateLastPlayed": "2017-08-03T10:00:00Z"}]}]}`),
}

// run executes the command line against a canned Bungie.net and returns stdout.
func run(t *testing.T, bodies map[string]string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("BUNGIE_URL_BASE", testBaseURL)
	t.Setenv("BUNGIE_API_KEY", "test-api-key")

	transport = bungie.TransportFunc(func(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
		if body, ok := bodies[strings.TrimPrefix(url, testBaseURL)]; ok {
			return []byte(body), nil
		}
		return nil, errors.New("unreachable")
	})
	t.Cleanup(func() { transport = nil })

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func merge(maps ...map[string]string) map[string]string {
	result := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}

func TestPlayerCommand(t *testing.T) {
	out, err := run(t, playerBodies, "player", "rking788", "--platform", "xbox")
	require.NoError(t, err)

	assert.JSONEq(t, `{"gamertag": "rking788", "platform": "Xbox", "membershipId": "4611"}`, out)
}

func TestPlayerCommandNotFound(t *testing.T) {
	bodies := map[string]string{"/Destiny/SearchDestinyPlayer/1/nobody/": envelope(`[]`)}

	_, err := run(t, bodies, "player", "nobody", "-p", "xbox")

	assert.ErrorContains(t, err, `no Destiny account found for "nobody"`)
}

func TestUnknownPlatform(t *testing.T) {
	_, err := run(t, playerBodies, "player", "rking788", "--platform", "dreamcast")

	assert.ErrorContains(t, err, "unknown platform")
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, playerBodies, "xur", "--format", "xml")

	assert.ErrorContains(t, err, "unknown output format")
}

func TestProfileCommand(t *testing.T) {
	bodies := merge(playerBodies, map[string]string{
		"/Destiny/1/Account/4611/Advisors/": envelope(`{"data": {"recordBooks": {"840570351": {
			"bookHash": 840570351, "records": {"1": {"recordHash": 1, "status": 2}, "2": {"recordHash": 2, "status": 0}}}}}}`),
		"/Destiny/1/Account/4611/Summary/": envelope(`{"data": {"membershipId": "4611", "characters": [
			{"characterBase": {"characterId": "c1", "currentActivityHash": 0}}]}}`),
	})

	out, err := run(t, bodies, "profile", "rking788", "-p", "xbox")
	require.NoError(t, err)

	profile := Profile{}
	require.NoError(t, json.Unmarshal([]byte(out), &profile))

	assert.Equal(t, 4215, profile.GrimoireScore)
	assert.Len(t, profile.Characters, 2)
	assert.Equal(t, "warlock", profile.Characters[1].Class)
	assert.Equal(t, "c2", profile.LastPlayed)
	require.NotNil(t, profile.Triumphs)
	assert.Equal(t, 50, *profile.Triumphs)
	assert.Nil(t, profile.CurrentActivity)
}

func TestProfileCommandUnavailable(t *testing.T) {
	bodies := map[string]string{searchPath: playerBodies[searchPath]}

	_, err := run(t, bodies, "profile", "rking788", "-p", "xbox")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInventoryCommand(t *testing.T) {
	bodies := merge(playerBodies, map[string]string{
		"/Destiny/1/Account/4611/Character/c2/Inventory/Summary/": envelope(`{"data": {"items": [
			{"itemHash": 10, "itemId": "i1", "isEquipped": true, "primaryStat": {"statHash": 1, "value": 390}},
			{"itemHash": 11, "itemId": "i2", "isEquipped": false, "primaryStat": {"statHash": 1, "value": 400}},
			{"itemHash": 12, "itemId": "i3", "isEquipped": true, "primaryStat": {"statHash": 1, "value": 400}}]}}`),
	})

	out, err := run(t, bodies, "inventory", "rking788", "-p", "xbox")
	require.NoError(t, err)

	inventory := Inventory{}
	require.NoError(t, json.Unmarshal([]byte(out), &inventory))
	assert.Equal(t, "c2", inventory.CharacterID)
	assert.Equal(t, 395, inventory.EquippedPower)
	require.Len(t, inventory.Items, 3)
	assert.Equal(t, "i2", inventory.Items[0].InstanceID)
	assert.Equal(t, "i1", inventory.Items[2].InstanceID)

	out, err = run(t, bodies, "inventory", "rking788", "-p", "xbox", "--equipped")
	require.NoError(t, err)

	inventory = Inventory{}
	require.NoError(t, json.Unmarshal([]byte(out), &inventory))
	require.Len(t, inventory.Items, 2)
	assert.Equal(t, "i3", inventory.Items[0].InstanceID)

	out, err = run(t, bodies, "inventory", "rking788", "-p", "xbox", "--hash", "11")
	require.NoError(t, err)

	inventory = Inventory{}
	require.NoError(t, json.Unmarshal([]byte(out), &inventory))
	require.Len(t, inventory.Items, 1)
	assert.Equal(t, uint(11), inventory.Items[0].ItemHash)
}

func TestInventoryUnknownCharacter(t *testing.T) {
	_, err := run(t, playerBodies, "inventory", "rking788", "-p", "xbox", "--character", "c9")

	assert.ErrorContains(t, err, `no character "c9"`)
}

func TestXurCommandYAML(t *testing.T) {
	bodies := map[string]string{
		bungie.XurAdvisorEndpoint: envelope(`{"data": {"saleItemCategories": [{"categoryTitle": "Exotic Gear", "saleItems": [
			{"item": {"itemHash": 1, "isEquipment": true, "primaryStat": {"statHash": 3897883278, "value": 3}}},
			{"item": {"itemHash": 2, "isEquipment": true, "primaryStat": {"statHash": 368428387, "value": 3}}}]}]}}`),
	}

	out, err := run(t, bodies, "xur", "--format", "yaml")
	require.NoError(t, err)

	items := []XurItem{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &items))
	assert.Equal(t, []XurItem{{ItemHash: 1, Kind: "armor"}, {ItemHash: 2, Kind: "weapon"}}, items)
}

func TestXurCommandNotVisiting(t *testing.T) {
	out, err := run(t, map[string]string{bungie.XurAdvisorEndpoint: envelope(`{}`)}, "xur")
	require.NoError(t, err)

	assert.JSONEq(t, `[]`, out)
}

func TestWeeklyCommandUnavailable(t *testing.T) {
	_, err := run(t, nil, "weekly")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClanCommandNeedsPlatform(t *testing.T) {
	_, err := run(t, nil, "clan", "42")

	assert.ErrorContains(t, err, "--platform")
}

func TestClanCommand(t *testing.T) {
	bodies := map[string]string{
		"/Group/42/ClanMembers/?currentPage=0&platformType=2": envelope(`{"hasMore": false, "results": [
			{"destinyUserInfo": {"membershipType": 2, "membershipId": "77", "displayName": "Cayde"}}]}`),
	}

	out, err := run(t, bodies, "clan", "42", "-p", "ps4")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"displayName": "Cayde", "platform": "Playstation", "membershipId": "77", "membershipType": 2}]`, out)
}

func TestRawCommand(t *testing.T) {
	bodies := map[string]string{
		"/Destiny/Manifest/?lc=en": envelope(`{"version": "56578.17.04.12.1251-6"}`),
	}

	out, err := run(t, bodies, "raw", "/Destiny/Manifest/", "-q", "lc=en")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version": "56578.17.04.12.1251-6"}`, out)

	_, err = run(t, bodies, "raw", "/Destiny/Manifest/", "-q", "broken")
	assert.ErrorContains(t, err, "key=value")
}

func TestRawCommandArrayResponse(t *testing.T) {
	bodies := map[string]string{
		searchPath: playerBodies[searchPath],
	}

	out, err := run(t, bodies, "raw", searchPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"membershipId": "4611", "membershipType": 1, "displayName": "rking788"}]`, out)
}
