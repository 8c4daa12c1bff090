package bungie

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rking788/warmind-advisors/models"
)

func clanPagePath(page int) string {
	return fmt.Sprintf("/Group/42/ClanMembers/?currentPage=%d&platformType=1", page)
}

func clanPageBody(hasMore bool, names ...string) string {
	results := ""
	for i, name := range names {
		if i > 0 {
			results += ","
		}
		results += fmt.Sprintf(`{"destinyUserInfo": {"membershipType": 1, "membershipId": "id-%s", "displayName": "%s"}}`,
			name, name)
	}

	return envelope(fmt.Sprintf(`{"hasMore": %t, "results": [%s]}`, hasMore, results))
}

func memberNames(members []models.ClanMember) []string {
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.DisplayName)
	}

	return names
}

func TestGetClanRosterPageOrder(t *testing.T) {
	transport := newFakeTransport().
		respond(clanPagePath(0), clanPageBody(true, "a", "b")).
		respond(clanPagePath(1), clanPageBody(true, "c")).
		respond(clanPagePath(2), clanPageBody(false, "d", "e"))
	c := newTestClient(transport, &recordingLogger{})

	roster := c.GetClanRoster(context.Background(), "42", models.Xbox)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, memberNames(roster))
	assert.Equal(t, []string{clanPagePath(0), clanPagePath(1), clanPagePath(2)}, transport.paths())

	require.NotEmpty(t, roster)
	assert.Equal(t, models.NewDestinyID(models.Xbox, "id-a"), roster[0].ID)
	assert.Equal(t, 1, roster[0].MembershipType)
}

func TestGetClanRosterSkipsInvalidPages(t *testing.T) {
	transport := newFakeTransport().
		respond(clanPagePath(0), clanPageBody(true, "a")).
		respond(clanPagePath(1), invalidEnvelope).
		respond(clanPagePath(2), envelope(`{"hasMore": true}`)).
		respond(clanPagePath(3), clanPageBody(false, "b"))
	c := newTestClient(transport, &recordingLogger{})

	roster := c.GetClanRoster(context.Background(), "42", models.Xbox)

	assert.Equal(t, []string{"a", "b"}, memberNames(roster))
	assert.Len(t, transport.paths(), 4)
}

func TestGetClanRosterStopsOnEmptyFinalPage(t *testing.T) {
	transport := newFakeTransport().
		respond(clanPagePath(0), clanPageBody(true, "a")).
		respond(clanPagePath(1), envelope(`{"hasMore": false, "results": []}`))
	c := newTestClient(transport, &recordingLogger{})

	roster := c.GetClanRoster(context.Background(), "42", models.Xbox)

	assert.Equal(t, []string{"a"}, memberNames(roster))
	assert.Len(t, transport.paths(), 2)
}

func TestGetClanRosterPageCeiling(t *testing.T) {
	transport := newFakeTransport()
	for page := 0; page < 5; page++ {
		transport.respond(clanPagePath(page), clanPageBody(true, fmt.Sprintf("m%d", page)))
	}

	log := &recordingLogger{}
	c := NewClient(Config{
		BaseURL:      testBaseURL,
		Transport:    transport,
		Logger:       log,
		MaxClanPages: 3,
	})

	roster := c.GetClanRoster(context.Background(), "42", models.Xbox)

	assert.Equal(t, []string{"m0", "m1", "m2"}, memberNames(roster))
	assert.Len(t, transport.paths(), 3)
	assert.Len(t, log.warnings(), 1)
}

func TestGetClanRosterRetriesInvalidPage(t *testing.T) {
	transport := newFakeTransport().
		respond(clanPagePath(0), invalidEnvelope).
		respond(clanPagePath(1), clanPageBody(false, "a"))

	c := NewClient(Config{
		BaseURL:          testBaseURL,
		Transport:        transport,
		Logger:           &recordingLogger{},
		ClanPageAttempts: 3,
	})

	roster := c.GetClanRoster(context.Background(), "42", models.Xbox)

	assert.Equal(t, []string{"a"}, memberNames(roster))
	assert.Equal(t, []string{clanPagePath(0), clanPagePath(0), clanPagePath(0), clanPagePath(1)},
		transport.paths())
}

func TestGetClanRosterEmptyIsNotNil(t *testing.T) {
	transport := newFakeTransport().respond(clanPagePath(0), envelope(`{"hasMore": false}`))
	c := newTestClient(transport, &recordingLogger{})

	roster := c.GetClanRoster(context.Background(), "42", models.Xbox)

	assert.NotNil(t, roster)
	assert.Empty(t, roster)
}

func TestGetClanRosterStopsWhenCanceled(t *testing.T) {
	transport := newFakeTransport().respond(clanPagePath(0), clanPageBody(true, "a"))
	log := &recordingLogger{}
	c := newTestClient(transport, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	roster := c.GetClanRoster(ctx, "42", models.Xbox)

	assert.NotNil(t, roster)
	assert.Empty(t, roster)
	assert.Empty(t, transport.paths())
	assert.Empty(t, log.warnings())
}

// cancelAfterFirstPage cancels the context once page 0 has been answered.
type cancelAfterFirstPage struct {
	*fakeTransport
	cancel context.CancelFunc
}

func (c *cancelAfterFirstPage) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	body, err := c.fakeTransport.Fetch(ctx, url, headers)
	c.cancel()
	return body, err
}

func TestGetClanRosterCanceledKeepsReadMembers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := &cancelAfterFirstPage{
		fakeTransport: newFakeTransport().
			respond(clanPagePath(0), clanPageBody(true, "a", "b")).
			respond(clanPagePath(1), clanPageBody(false, "c")),
		cancel: cancel,
	}
	log := &recordingLogger{}
	c := newTestClient(transport, log)

	roster := c.GetClanRoster(ctx, "42", models.Xbox)

	assert.Equal(t, []string{"a", "b"}, memberNames(roster))
	assert.Equal(t, []string{clanPagePath(0)}, transport.paths())
	assert.Empty(t, log.warnings())
}
