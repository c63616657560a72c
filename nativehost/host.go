// Package nativehost speaks the Chrome native messaging protocol with
// the browser extension: framed JSON on stdin/stdout. It is a thin
// transport over the focus service and categorizer.
package nativehost

import (
	"errors"
	"io"
	"strings"

	"foxus/app/dto"
	"foxus/app/models"
	"foxus/app/repo"
	"foxus/app/services"
	"foxus/app/wallclock"
	"foxus/logger"
	"foxus/network"
)

// Each accepted use_distraction_time call spends this much budget; the
// extension polls while a blocked page is open and the focus service
// rate limit keeps the effective burn near real time.
const distractionSliceSecs = 30

type Host struct {
	focus       *services.FocusService
	categorizer *services.Categorizer
	activities  *repo.ActivityRepository
	clock       wallclock.Clock
}

func New(focus *services.FocusService, categorizer *services.Categorizer, activities *repo.ActivityRepository) *Host {
	return &Host{
		focus:       focus,
		categorizer: categorizer,
		activities:  activities,
		clock:       wallclock.SystemClock{},
	}
}

// Run processes messages until the reader closes. A clean EOF returns
// nil; the browser closing the pipe is the normal shutdown path.
func (h *Host) Run(r io.Reader, w io.Writer) error {
	for {
		var msg dto.HostIncoming
		if err := network.ReadJSON(r, &msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		reply := h.Handle(msg)
		if reply == nil {
			continue
		}
		if err := network.WriteJSON(w, reply); err != nil {
			return err
		}
	}
}

// Handle maps one incoming message to its reply; nil means
// fire-and-forget.
func (h *Host) Handle(msg dto.HostIncoming) any {
	switch msg.Type {
	case dto.HostMsgActivity:
		h.recordActivity(msg)
		return nil
	case dto.HostMsgRequestState:
		return h.stateReply()
	case dto.HostMsgUseDistractionTime:
		return h.useDistractionTime()
	default:
		logger.Infof("native host: unknown message type %q", msg.Type)
		return nil
	}
}

func (h *Host) recordActivity(msg dto.HostIncoming) {
	domain := ExtractDomain(msg.URL)
	categoryID := h.categorizer.CategorizeURL(domain)

	activity := &models.Activity{
		Timestamp:    h.clock.Now(),
		DurationSecs: 5,
		Source:       models.SourceBrowser,
		WindowTitle:  &msg.Title,
		URL:          &msg.URL,
		Domain:       &domain,
		CategoryID:   &categoryID,
	}
	if err := h.activities.Create(activity); err != nil {
		logger.Errorf("native host: save activity: %v", err)
	}
}

func (h *Host) stateReply() any {
	state, err := h.focus.GetState()
	if err != nil {
		logger.Errorf("native host: get state: %v", err)
		return dto.HostStateReply{Type: "state", BlockedDomains: []string{}}
	}
	return dto.HostStateReply{
		Type:            "state",
		FocusActive:     state.Active,
		BudgetRemaining: state.BudgetRemaining,
		BlockedDomains:  state.BlockedDomains,
	}
}

func (h *Host) useDistractionTime() any {
	remaining, err := h.focus.UseDistractionTime(distractionSliceSecs)
	if err != nil {
		logger.Errorf("native host: use distraction time: %v", err)
		return nil
	}
	if remaining == nil {
		return nil
	}
	if *remaining <= 0 {
		return dto.HostBlockedReply{Type: "hard_blocked"}
	}
	return dto.HostBudgetReply{Type: "budget_updated", Remaining: *remaining}
}

// ExtractDomain strips a leading scheme and returns everything before
// the first slash.
func ExtractDomain(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	if i := strings.Index(url, "/"); i >= 0 {
		return url[:i]
	}
	return url
}
