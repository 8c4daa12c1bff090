package briefing

import (
	"context"
	"errors"
	"strings"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"

	"github.com/rking788/warmind-advisors/models"
	"github.com/rking788/warmind-advisors/storage"
)

// GamertagPrompt is spoken when a player question arrives before any gamertag is known.
const GamertagPrompt = "Which gamertag should I look up, Guardian?"

// SessionStore persists the per conversation state. *storage.Cache satisfies it.
type SessionStore interface {
	GetSession(id string) (*storage.Session, error)
	SaveSession(id string, session *storage.Session) error
	ClearSession(id string) error
}

var _ SessionStore = (*storage.Cache)(nil)

// UnknownValueRecorder records slot values that could not be used. *storage.LookupDB
// satisfies it.
type UnknownValueRecorder interface {
	InsertUnknownValue(ctx context.Context, value, tableName string) error
}

// PlayerBriefing composes the speech for a question about a single player.
type PlayerBriefing func(ctx context.Context, gamertag string, id models.DestinyID) string

// PlayerRequest is the player named (or not) in a single voice request.
type PlayerRequest struct {
	SessionID string
	Gamertag  string
	Platform  string
}

// Players answers player questions for the voice assistants, remembering the gamertag and
// resolved account in the conversation session.
type Players struct {
	service  *Service
	sessions SessionStore
	unknown  UnknownValueRecorder
}

// NewPlayers creates the session aware player answerer. unknown may be nil.
func NewPlayers(service *Service, sessions SessionStore, unknown UnknownValueRecorder) *Players {
	return &Players{
		service:  service,
		sessions: sessions,
		unknown:  unknown,
	}
}

// Service is the briefing service used to answer questions.
func (p *Players) Service() *Service {
	return p.service
}

// Answer resolves the player for the request and composes the briefing. expectReply is true
// when the conversation should stay open for a follow up question.
func (p *Players) Answer(ctx context.Context, request PlayerRequest, brief PlayerBriefing) (speech string, expectReply bool) {

	session := p.session(request.SessionID)
	p.apply(ctx, request, session)

	if session.Gamertag == "" {
		return GamertagPrompt, true
	}

	id := session.DestinyID()
	if id == nil {
		id = p.service.ResolvePlayer(ctx, session.Gamertag, session.Platform)
		if id == nil {
			p.recordUnknown(ctx, session.Gamertag, storage.UnknownGamertagTable)
			return PlayerNotFound(session.Gamertag), false
		}

		session.Platform = id.Platform()
		session.MembershipID = id.MembershipID()
	}

	if err := p.sessions.SaveSession(request.SessionID, session); err != nil {
		glg.Warnf("Failed to save session %s: %s", request.SessionID, err.Error())
	}

	return brief(ctx, session.Gamertag, *id), true
}

// Forget drops everything remembered for the conversation.
func (p *Players) Forget(sessionID string) {
	if err := p.sessions.ClearSession(sessionID); err != nil {
		glg.Warnf("Failed to clear session %s: %s", sessionID, err.Error())
	}
}

// ConfirmPlayer is the briefing for a request that only names the player.
func ConfirmPlayer(ctx context.Context, gamertag string, id models.DestinyID) string {
	return "Okay Guardian, I'll answer questions about " + gamertag + " on " + id.Platform().String() + "."
}

// session loads the stored session or starts an empty one.
func (p *Players) session(id string) *storage.Session {
	session, err := p.sessions.GetSession(id)
	if err != nil {
		// A missing session is the normal case for the first request of a conversation
		if !errors.Is(err, storage.ErrNotFound) {
			raven.CaptureError(err, nil)
			glg.Warnf("Failed to read session %s: %s", id, err.Error())
		}
		return &storage.Session{}
	}

	return session
}

// apply copies the request's player into the session. A new gamertag or platform forgets the
// previously resolved account.
func (p *Players) apply(ctx context.Context, request PlayerRequest, session *storage.Session) {

	gamertag := strings.TrimSpace(request.Gamertag)
	if gamertag != "" && !strings.EqualFold(gamertag, session.Gamertag) {
		session.Gamertag = gamertag
		session.Platform = models.AnyPlatform
		session.MembershipID = ""
	}

	if strings.TrimSpace(request.Platform) == "" {
		return
	}

	platform, err := models.ParsePlatform(request.Platform)
	if err != nil {
		p.recordUnknown(ctx, request.Platform, storage.UnknownPlatformTable)
		return
	}
	if platform != session.Platform {
		session.Platform = platform
		session.MembershipID = ""
	}
}

func (p *Players) recordUnknown(ctx context.Context, value, table string) {
	if p.unknown == nil {
		return
	}

	_ = p.unknown.InsertUnknownValue(ctx, value, table)
}
