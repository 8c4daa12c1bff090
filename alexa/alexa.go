package alexa

import (
	"context"
	"time"

	"github.com/kpango/glg"
	"github.com/mikeflynn/go-alexa/skillserver"

	"github.com/rking788/warmind-advisors/briefing"
)

// Slot names used by the interaction model
const (
	GamertagSlot = "Gamertag"
	PlatformSlot = "Platform"
)

// requestTimeout keeps a handler under the time Alexa waits for a skill response.
const requestTimeout = 7 * time.Second

// Handler is the type of function that should be used to respond to a specific intent.
type Handler func(*skillserver.EchoRequest) *skillserver.EchoResponse

// Skill answers the Warmind Advisors intents.
type Skill struct {
	players  *briefing.Players
	handlers map[string]Handler
}

// NewSkill wires the intent handlers.
func NewSkill(players *briefing.Players) *Skill {
	s := &Skill{players: players}
	service := players.Service()

	s.handlers = map[string]Handler{
		"XurInventory":      s.global(service.Xur),
		"Nightfall":         s.global(service.Nightfall),
		"WeeklyActivities":  s.global(service.WeeklyActivities),
		"CurrentActivity":   s.player(service.CurrentActivity),
		"GrimoireScore":     s.player(service.GrimoireScore),
		"TriumphsProgress":  s.player(service.TriumphsProgress),
		"RaidCompletions":   s.player(service.RaidCompletions),
		"LastPlayed":        s.player(service.LastPlayed),
		"SetPlayer":         s.player(briefing.ConfirmPlayer),
		"AMAZON.HelpIntent": HelpPrompt,
	}

	return s
}

// Intents lists the intent names with a registered handler.
func (s *Skill) Intents() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}

	return names
}

// WelcomePrompt is responsible for prompting the user with information about what they can ask
// the skill to do.
func WelcomePrompt(echoRequest *skillserver.EchoRequest) (response *skillserver.EchoResponse) {
	response = skillserver.NewEchoResponse()

	response.OutputSpeech("Welcome Guardian, you can ask what Xur is selling, what this week's nightfall is, " +
		"or ask about a player's current activity, grimoire score, or raid completions.").
		Reprompt("Do you want to know what Xur is selling, or hear this week's featured activities?").
		EndSession(false)

	return
}

// HelpPrompt provides the required information to satisfy the HelpIntent built-in Alexa intent.
func HelpPrompt(echoRequest *skillserver.EchoRequest) (response *skillserver.EchoResponse) {
	response = skillserver.NewEchoResponse()

	response.OutputSpeech("I can tell you what Xur is selling and which activities are featured this week. " +
		"Tell me a gamertag, and optionally Xbox or Playstation, to hear what that Guardian is playing, " +
		"their grimoire score, their Age of Triumphs progress, their raid completions, " +
		"or when they last played.").
		EndSession(false)

	return
}

// global adapts a briefing that does not depend on a player.
func (s *Skill) global(brief func(ctx context.Context) string) Handler {
	return func(request *skillserver.EchoRequest) *skillserver.EchoResponse {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		response := skillserver.NewEchoResponse()
		response.OutputSpeech(brief(ctx))

		return response
	}
}

// player adapts a player briefing. The gamertag and platform come from the request slots or,
// when the slots are empty, from the gamertag remembered in the session.
func (s *Skill) player(brief briefing.PlayerBriefing) Handler {
	return func(request *skillserver.EchoRequest) *skillserver.EchoResponse {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		// Missing slots come back as errors and mean the same as empty values
		gamertag, _ := request.GetSlotValue(GamertagSlot)
		platform, _ := request.GetSlotValue(PlatformSlot)

		speech, expectReply := s.players.Answer(ctx, briefing.PlayerRequest{
			SessionID: request.GetSessionID(),
			Gamertag:  gamertag,
			Platform:  platform,
		}, brief)

		response := skillserver.NewEchoResponse()
		response.OutputSpeech(speech)
		if expectReply {
			response.Reprompt("What else would you like to know, Guardian?").EndSession(false)
		}

		return response
	}
}

// HandleIntent is a handler method that is responsible for receiving the
// call from a Alexa command and returning the correct speech or cards.
func (s *Skill) HandleIntent(echoRequest *skillserver.EchoRequest, echoResponse *skillserver.EchoResponse) {

	// Time the intent handler to determine if it is taking longer than normal
	startTime := time.Now()
	defer func(start time.Time) {
		glg.Successf("IntentHandler execution time: %v", time.Since(start))
	}(startTime)

	var response *skillserver.EchoResponse

	intentName := echoRequest.GetIntentName()
	glg.Infof("RequestType: %s, IntentName: %s", echoRequest.GetRequestType(), intentName)

	handler, ok := s.handlers[intentName]
	if echoRequest.GetRequestType() == "LaunchRequest" {
		response = WelcomePrompt(echoRequest)
	} else if intentName == "AMAZON.StopIntent" || intentName == "AMAZON.CancelIntent" {
		response = skillserver.NewEchoResponse()
	} else if ok {
		response = handler(echoRequest)
	} else {
		response = skillserver.NewEchoResponse()
		response.OutputSpeech("Sorry Guardian, I did not understand your request.")
	}

	if response.Response.ShouldEndSession {
		s.HandleSessionEnded(echoRequest, response)
	}

	*echoResponse = *response
}

// HandleSessionEnded is responsible for cleaning up an open session since the user
// has quit the session.
func (s *Skill) HandleSessionEnded(echoRequest *skillserver.EchoRequest, echoResponse *skillserver.EchoResponse) {
	s.players.Forget(echoRequest.GetSessionID())
}
