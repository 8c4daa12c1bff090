//go:build integration

package bungie

import (
	"context"
	"os"
	"testing"

	"github.com/rking788/warmind-advisors/models"
)

const (
	integrationGamertag     = "rking788"
	integrationMembershipID = "4611686018437694484"
)

func TestResolveIdentityAgainstBungie(t *testing.T) {

	apiKey := os.Getenv("BUNGIE_API_KEY")
	if apiKey == "" {
		t.Skip("BUNGIE_API_KEY is not set")
	}

	c := NewClient(Config{APIKey: apiKey})
	id := c.ResolveIdentity(context.Background(), integrationGamertag, models.Xbox)
	if id == nil {
		t.Fatal("Nil identity found for the integration gamertag")
	} else if id.MembershipID() != integrationMembershipID {
		t.Fatalf("Incorrect Destiny membership loaded: Expected(%s) Actual(%s)",
			integrationMembershipID, id.MembershipID())
	}

	profile := c.GetProfile(context.Background(), *id)
	if profile == nil {
		t.Fatal("Nil profile found for the integration account")
	} else if len(profile.Characters) == 0 {
		t.Fatal("No characters found on the integration profile")
	}
}
