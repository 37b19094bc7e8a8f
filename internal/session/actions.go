package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/notify"
	"github.com/osse101/Pokemonkey_Go/internal/progress"
)

// State returns the user's current state.
func (s *service) State(ctx context.Context, userID string) (domain.GameState, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return domain.GameState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess, sess.state), nil
}

// Missions returns the user's mission board.
func (s *service) Missions(ctx context.Context, userID string) ([]domain.Mission, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.Missions, nil
}

// StartMission moves an available mission into progress.
func (s *service) StartMission(ctx context.Context, userID, missionID string) (ActionResult, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return ActionResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, out, err := s.apply(ctx, sess, progress.StartMission{MissionID: strings.TrimSpace(missionID)})
	if err != nil {
		return ActionResult{}, err
	}
	s.enqueue(sess, statusPush(next, out.StartedMission, domain.MissionInProgress))
	s.publish(ctx, event.NewMissionStartedEvent(next.UserID, out.StartedMission, missionTitle(next, out.StartedMission)))

	return ActionResult{State: s.view(sess, next), Message: notify.MsgMissionStarted}, nil
}

// SubmitReport applies a field report, appends it to the report log and
// publishes it to the endpoint.
func (s *service) SubmitReport(ctx context.Context, userID string, draft domain.ReportDraft) (ActionResult, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return ActionResult{}, err
	}

	draft.MissionID = strings.TrimSpace(draft.MissionID)
	draft.Unit = strings.TrimSpace(draft.Unit)
	draft.Notes = strings.TrimSpace(draft.Notes)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, out, err := s.apply(ctx, sess, progress.SubmitReport{
		ReportID: uuid.NewString(),
		Draft:    draft,
		Now:      s.clock(),
	})
	if err != nil {
		return ActionResult{}, err
	}
	report := *out.Report

	if s.reports != nil {
		if err := s.reports.Append(ctx, report); err != nil {
			logger.FromContext(ctx).Warn(LogMsgReportAppendFailed, "report_id", report.ID, "error", err)
		}
	}

	pushes := []push{reportPush(next, report)}
	for _, id := range out.CompletedMissions {
		pushes = append(pushes, statusPush(next, id, domain.MissionCompleted))
	}
	s.enqueue(sess, pushes...)

	s.publish(ctx, event.NewReportSubmittedEvent(next.UserID, event.ReportSubmittedPayloadV1{
		ReportID:     report.ID,
		MissionID:    report.MissionID,
		MissionTitle: report.MissionTitle,
		Unit:         report.UnitType,
		RawQuantity:  report.RawQuantity,
		Achieved:     report.Achieved,
		XPGained:     report.XPGained,
	}))
	s.publishOutcome(ctx, next, out)

	msg := notify.MsgReportSaved
	switch {
	case len(out.CompletedMissions) > 0:
		msg = notify.MissionComplete(missionTitle(next, out.CompletedMissions[0]))
	case out.LeveledUp():
		msg = notify.LevelUp(out.NewLevel)
	}

	return ActionResult{
		State:             s.view(sess, next),
		Message:           msg,
		XPGained:          out.XPGained,
		Report:            &report,
		CompletedMissions: out.CompletedMissions,
		UnlockedMissions:  out.UnlockedMissions,
		LeveledUp:         out.LeveledUp(),
	}, nil
}

// Reports returns the newest reports first. The shared report log is used
// when configured; the snapshot's own log otherwise.
func (s *service) Reports(ctx context.Context, userID string, limit int) ([]domain.FieldReport, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	limit = min(limit, MaxReportLimit)

	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.reports != nil {
		reports, err := s.reports.ListByUser(ctx, userID, limit)
		if err == nil {
			return reports, nil
		}
		logger.FromContext(ctx).Warn(LogMsgRemoteLookupFailed, "source", "report_log", "error", err)
	}

	if len(state.Reports) > limit {
		return state.Reports[:limit], nil
	}
	return state.Reports, nil
}

// Skins lists the market catalog.
func (s *service) Skins() []domain.Skin {
	return s.catalog.Skins()
}

// BuySkin buys the skin whose id or name best matches skinQuery.
func (s *service) BuySkin(ctx context.Context, userID, skinQuery string) (ActionResult, error) {
	skin, err := s.catalog.ResolveSkin(skinQuery)
	if err != nil {
		return ActionResult{}, err
	}

	sess, err := s.lookup(userID)
	if err != nil {
		return ActionResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, out, err := s.apply(ctx, sess, progress.BuySkin{Skin: skin})
	if err != nil {
		return ActionResult{}, err
	}
	s.enqueue(sess, progressPush(next))
	s.publish(ctx, event.NewSkinPurchasedEvent(next.UserID, skin.ID, skin.Name, skin.Cost))

	return ActionResult{State: s.view(sess, next), Message: notify.SkinBought(skin.Name), Skin: out.Skin}, nil
}

// EquipSkin switches to an owned skin.
func (s *service) EquipSkin(ctx context.Context, userID, skinID string) (ActionResult, error) {
	skinID = strings.TrimSpace(skinID)
	skin, ok := s.catalog.Skin(skinID)
	if !ok {
		return ActionResult{}, fmt.Errorf("%w: %s", domain.ErrSkinNotFound, skinID)
	}

	next, _, err := s.mutateAndSync(ctx, userID, progress.EquipSkin{SkinID: skin.ID})
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{State: next, Message: notify.MsgSkinEquipped, Skin: &skin}, nil
}

// Plans returns the user's work memo.
func (s *service) Plans(ctx context.Context, userID string) ([]domain.WorkPlan, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.MemoPlans, nil
}

// AddPlan adds a work plan, assigning an id when the client sent none.
func (s *service) AddPlan(ctx context.Context, userID string, plan domain.WorkPlan) (ActionResult, error) {
	if strings.TrimSpace(plan.ID) == "" {
		plan.ID = uuid.NewString()
	}
	plan.IsDone = false

	sess, err := s.lookup(userID)
	if err != nil {
		return ActionResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, out, err := s.apply(ctx, sess, progress.AddPlan{Plan: plan})
	if err != nil {
		return ActionResult{}, err
	}
	s.enqueue(sess, progressPush(next))
	return ActionResult{State: s.view(sess, next), Plan: out.Plan}, nil
}

// TogglePlan flips a plan's done flag.
func (s *service) TogglePlan(ctx context.Context, userID, planID string) (ActionResult, error) {
	next, out, err := s.mutateAndSync(ctx, userID, progress.TogglePlan{PlanID: planID})
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{State: next, Plan: out.Plan}, nil
}

// DeletePlan removes a plan.
func (s *service) DeletePlan(ctx context.Context, userID, planID string) (ActionResult, error) {
	next, _, err := s.mutateAndSync(ctx, userID, progress.DeletePlan{PlanID: planID})
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{State: next}, nil
}

// mutateAndSync applies an action whose only side effect is a progress push.
func (s *service) mutateAndSync(ctx context.Context, userID string, action progress.Action) (domain.GameState, progress.Outcome, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return domain.GameState{}, progress.Outcome{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, out, err := s.apply(ctx, sess, action)
	if err != nil {
		return domain.GameState{}, progress.Outcome{}, err
	}
	s.enqueue(sess, progressPush(next))
	return s.view(sess, next), out, nil
}
