// Package admin implements the admin-approval workflow driven by bot
// commands: gating a state change (granting the admin flag) behind an
// existing-admin check, and notifying the requesting chat of the outcome.
package admin

import (
	"context"
	"errors"
	"strconv"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/users"
)

// Notifier delivers a text message to a chat. Delivery is fire-and-forget;
// this workflow observes no delivery guarantee.
type Notifier interface {
	Send(chatID int64, text string)
}

// User-facing notification texts. Every workflow invocation resolves into
// exactly one terminal notification to the requesting chat.
const (
	MsgNotAuthorized  = "You are not authorized to use this command"
	MsgUserNotFound   = "User not found"
	MsgApproved       = "User has been approved"
	MsgAdminsNotified = "Admins have been notified"
	MsgInternalError  = "An error occurred while processing your request"
)

// Service runs the approval workflow over the user repository and a
// notification sink, both supplied at construction.
type Service struct {
	repo     users.Repository
	notifier Notifier
	logger   logging.Logger
}

func NewService(repo users.Repository, notifier Notifier, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With("module", "admin_service"),
	}
}

// Approve grants the admin flag to the target account when the requester
// is an existing admin. It never returns an error: every outcome,
// including internal failures, becomes a single notification to chatID.
func (s *Service) Approve(ctx context.Context, chatID int64, requesterID string, targetID string) {

	requester, err := s.repo.GetByTelegramID(ctx, requesterID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.fail(ctx, chatID, "error looking up requester", err)
		return
	}
	if requester == nil || !requester.IsAdmin {
		s.notifier.Send(chatID, MsgNotAuthorized)
		return
	}

	target, err := s.repo.GetByTelegramID(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.notifier.Send(chatID, MsgUserNotFound)
			return
		}
		s.fail(ctx, chatID, "error looking up target", err)
		return
	}

	approved := *target
	approved.IsAdmin = true
	if _, err := s.repo.Save(ctx, &approved); err != nil {
		s.fail(ctx, chatID, "error saving approved user", err)
		return
	}

	s.notifier.Send(chatID, MsgApproved)
}

// RequestApproval notifies every current admin that the requester wants
// the admin flag, then confirms to the requesting chat.
func (s *Service) RequestApproval(ctx context.Context, chatID int64, requesterID string) {

	admins, err := s.repo.ListAdmins(ctx)
	if err != nil {
		s.fail(ctx, chatID, "error listing admins", err)
		return
	}

	for _, admin := range admins {
		adminChatID, err := strconv.ParseInt(admin.TelegramID, 10, 64)
		if err != nil {
			s.logger.Warn(ctx, "admin has non-numeric telegram id", "telegram_id", admin.TelegramID)
			continue
		}
		s.notifier.Send(adminChatID, "User request admin approval telegramId:"+requesterID)
	}

	s.notifier.Send(chatID, MsgAdminsNotified)
}

// Broadcast sends an admin-authored direct message to the target chat.
// Only admins may send; non-admin requesters get the not-authorized reply.
func (s *Service) Broadcast(ctx context.Context, chatID int64, requesterID string, targetChatID int64, message string) {

	requester, err := s.repo.GetByTelegramID(ctx, requesterID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.fail(ctx, chatID, "error looking up requester", err)
		return
	}
	if requester == nil || !requester.IsAdmin {
		s.notifier.Send(chatID, MsgNotAuthorized)
		return
	}

	if message == "" {
		message = "Welcome to the app!"
	}
	s.notifier.Send(targetChatID, "Hello from admin!\n\n"+message)
}

func (s *Service) fail(ctx context.Context, chatID int64, msg string, err error) {
	s.logger.Error(ctx, msg, "error", err)
	s.notifier.Send(chatID, MsgInternalError)
}
