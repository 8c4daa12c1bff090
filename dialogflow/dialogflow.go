package dialogflow

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/golang/protobuf/jsonpb"
	"github.com/kpango/glg"
	df2 "google.golang.org/genproto/googleapis/cloud/dialogflow/v2"

	"github.com/rking788/warmind-advisors/briefing"
)

// Parameter names used by the Dialogflow agent
const (
	GamertagParam = "Gamertag"
	PlatformParam = "Platform"
)

// WelcomeIntent is the intent Dialogflow fires when a conversation starts.
const WelcomeIntent = "Default Welcome Intent"

const requestTimeout = 8 * time.Second

type DialogFlowResponse struct {
	FulfillmentText string         `json:"fulfillmentText"`
	Payload         *GooglePayload `json:"payload"`
}

type GooglePayload struct {
	Google *AssistantResponse `json:"google"`
}

type AssistantResponse struct {
	ExpectUserResponse bool          `json:"expectUserResponse"`
	Rich               *RichResponse `json:"richResponse"`
}

type AssistantResponseItem struct {
	Simple *SimpleResponse `json:"simpleResponse"`
}

type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech"`
	DisplayText  string `json:"displayText,omitempty"`
}

type RichResponse struct {
	Items []*AssistantResponseItem `json:"items"`
}

func newGoogleDialogflowResponse() *DialogFlowResponse {
	response := &DialogFlowResponse{
		Payload: &GooglePayload{
			Google: &AssistantResponse{
				ExpectUserResponse: false,
				Rich:               &RichResponse{},
			},
		},
	}

	response.Payload.Google.Rich.Items = make([]*AssistantResponseItem, 0, 3)

	return response
}

func (r *DialogFlowResponse) setExpectUserResponse(expect bool) {
	r.Payload.Google.ExpectUserResponse = expect
}

func (r *DialogFlowResponse) setGoogleTextToSpeech(text string) {

	if len(r.Payload.Google.Rich.Items) == 0 {
		r.Payload.Google.Rich.Items = append(r.Payload.Google.Rich.Items, &AssistantResponseItem{Simple: &SimpleResponse{}})
	}

	r.Payload.Google.Rich.Items[0].Simple.TextToSpeech = text
	r.FulfillmentText = text
}

// Speech is the text the assistant will say.
func (r *DialogFlowResponse) Speech() string {
	return r.FulfillmentText
}

// ExpectsUserResponse reports whether the conversation stays open.
func (r *DialogFlowResponse) ExpectsUserResponse() bool {
	return r.Payload.Google.ExpectUserResponse
}

// Handler is the type of function that should be used to respond to a specific intent.
type Handler func(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse

// Webhook answers Dialogflow fulfillment requests for the Warmind Advisors agent.
type Webhook struct {
	players  *briefing.Players
	handlers map[string]Handler
}

// NewWebhook wires the intent handlers by intent display name.
func NewWebhook(players *briefing.Players) *Webhook {
	w := &Webhook{players: players}
	service := players.Service()

	w.handlers = map[string]Handler{
		"XurInventory":     w.global(service.Xur),
		"Nightfall":        w.global(service.Nightfall),
		"WeeklyActivities": w.global(service.WeeklyActivities),
		"CurrentActivity":  w.player(service.CurrentActivity),
		"GrimoireScore":    w.player(service.GrimoireScore),
		"TriumphsProgress": w.player(service.TriumphsProgress),
		"RaidCompletions":  w.player(service.RaidCompletions),
		"LastPlayed":       w.player(service.LastPlayed),
		"SetPlayer":        w.player(briefing.ConfirmPlayer),
		"Help":             help,
	}
	w.handlers[WelcomeIntent] = welcome

	return w
}

func stringParam(r *df2.WebhookRequest, name string) string {
	return r.GetQueryResult().GetParameters().GetFields()[name].GetStringValue()
}

func welcome(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {
	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("Welcome Guardian, you can ask what Xur is selling, what this week's nightfall is, " +
		"or ask about a player's current activity, grimoire score, or raid completions.")
	response.setExpectUserResponse(true)

	return response
}

func help(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {
	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("I can tell you what Xur is selling and which activities are featured this week. " +
		"Tell me a gamertag, and optionally Xbox or Playstation, to hear what that Guardian is playing, " +
		"their grimoire score, their Age of Triumphs progress, their raid completions, " +
		"or when they last played.")
	response.setExpectUserResponse(true)

	return response
}

func (w *Webhook) global(brief func(ctx context.Context) string) Handler {
	return func(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {
		response := newGoogleDialogflowResponse()
		response.setGoogleTextToSpeech(brief(ctx))

		return response
	}
}

func (w *Webhook) player(brief briefing.PlayerBriefing) Handler {
	return func(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {
		speech, expectReply := w.players.Answer(ctx, briefing.PlayerRequest{
			SessionID: r.GetSession(),
			Gamertag:  stringParam(r, GamertagParam),
			Platform:  stringParam(r, PlatformParam),
		}, brief)

		response := newGoogleDialogflowResponse()
		response.setGoogleTextToSpeech(speech)
		response.setExpectUserResponse(expectReply)

		return response
	}
}

// Handle dispatches a decoded webhook request on its intent display name.
func (w *Webhook) Handle(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {

	intentName := r.GetQueryResult().GetIntent().GetDisplayName()
	glg.Infof("Dialogflow IntentName: %s", intentName)

	if handler, ok := w.handlers[intentName]; ok {
		response := handler(ctx, r)
		if !response.ExpectsUserResponse() {
			w.players.Forget(r.GetSession())
		}
		return response
	}

	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("Sorry Guardian, I did not understand your request.")
	return response
}

// ServeHTTP decodes the Dialogflow v2 webhook request and writes the fulfillment response.
func (w *Webhook) ServeHTTP(rw http.ResponseWriter, r *http.Request) {

	request := &df2.WebhookRequest{}
	unmarshaler := jsonpb.Unmarshaler{AllowUnknownFields: true}
	if err := unmarshaler.Unmarshal(r.Body, request); err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Failed to decode the Dialogflow request: %s", err.Error())
		http.Error(rw, "Bad Request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response := w.Handle(ctx, request)

	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(response); err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Failed to write the Dialogflow response: %s", err.Error())
	}
}
