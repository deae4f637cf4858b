package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/clavicordio/bodymass-telegram-bot/internal/csvtable"
	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
	"github.com/clavicordio/bodymass-telegram-bot/internal/trend"
)

// recentWindowDays is the trailing window used by /plot and the post-entry
// plot.
const recentWindowDays = 14

const exportFileName = "bodymass.csv"

// RecordStore is the append-only mass record persistence the handlers need.
type RecordStore interface {
	AddRecord(ctx context.Context, userID int64, date time.Time, mass float64) error
	AddRecords(ctx context.Context, userID int64, records []model.MassRecord) error
	RecordsByUser(ctx context.Context, userID int64) ([]model.MassRecord, error)
	DeleteRecords(ctx context.Context, userID int64) error
}

// StateStore persists the per-user conversation state.
type StateStore interface {
	State(ctx context.Context, userID int64) (model.ConversationState, error)
	SetState(ctx context.Context, userID int64, state model.ConversationState) error
}

// sender is the slice of *tele.Bot the handlers use; tests substitute a fake.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type messageHandler struct {
	b       sender
	records RecordStore
	states  StateStore
	fetcher attachmentFetcher
	log     *logrus.Logger

	maxFileSize   int64
	maxBodyWeight float64
	threshold     float64

	now func() time.Time
}

func newMessageHandler(
	b sender,
	records RecordStore,
	states StateStore,
	fetcher attachmentFetcher,
	log *logrus.Logger,
	maxFileSize int64,
	maxBodyWeight float64,
	threshold float64,
) *messageHandler {
	return &messageHandler{
		b:             b,
		records:       records,
		states:        states,
		fetcher:       fetcher,
		log:           log,
		maxFileSize:   maxFileSize,
		maxBodyWeight: maxBodyWeight,
		threshold:     threshold,
		now:           time.Now,
	}
}

// process runs one conversation turn: load state, dispatch, run the action,
// persist the resulting state. Returns the dispatched action for metrics.
func (h *messageHandler) process(ctx context.Context, m *tele.Message) (action, error) {
	userID := m.Chat.ID
	text := strings.TrimSpace(m.Text)
	hasDocument := m.Document != nil

	state, err := h.states.State(ctx, userID)
	if err != nil {
		return actionNone, fmt.Errorf("error loading conversation state: %w", err)
	}

	act, err := route(state, text, hasDocument)
	if err != nil {
		return act, fmt.Errorf("%w: state=%q text=%q document=%v", err, state, text, hasDocument)
	}
	if act == actionNone {
		return act, nil
	}

	var next model.ConversationState
	switch act {
	case actionInfo:
		next, err = h.handleInfo(m)
	case actionEnterWeight:
		next, err = h.handleEnterWeight(m)
	case actionShowMenu:
		next, err = h.handleShowMenu(m)
	case actionPlotRecent:
		next, err = h.handlePlot(ctx, m, true, textPlotRecent)
	case actionPlotAll:
		next, err = h.handlePlot(ctx, m, false, textPlotAll)
	case actionDownload:
		next, err = h.handleDownload(ctx, m)
	case actionUpload:
		next, err = h.handleUpload(m)
	case actionErase:
		next, err = h.handleErase(m)
	case actionParseWeight:
		next, err = h.handleBodyWeight(ctx, m)
	case actionConfirmErase:
		next, err = h.handleEraseConfirmation(ctx, m)
	case actionImportCSV:
		next, err = h.handleCSVTable(ctx, m)
	case actionUnexpectedDocument:
		next, err = h.handleUnexpectedDocument(m)
	}
	if err != nil {
		return act, err
	}

	if err := h.states.SetState(ctx, userID, next); err != nil {
		return act, fmt.Errorf("error persisting conversation state: %w", err)
	}
	return act, nil
}

func (h *messageHandler) handleInfo(m *tele.Message) (model.ConversationState, error) {
	_, err := h.b.Send(m.Chat, textInfo, &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		ReplyMarkup:           defaultMarkup(),
		DisableWebPagePreview: true,
	})
	return model.StateInit, err
}

func (h *messageHandler) handleShowMenu(m *tele.Message) (model.ConversationState, error) {
	_, err := h.b.Send(m.Chat, textMenu, &tele.SendOptions{
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: defaultMarkup(),
	})
	return model.StateInit, err
}

func (h *messageHandler) handleEnterWeight(m *tele.Message) (model.ConversationState, error) {
	_, err := h.b.Send(m.Chat, textAskWeight)
	return model.StateAwaitingBodyWeight, err
}

// handleBodyWeight parses a free-text weight entry. An invalid value
// re-prompts and keeps the awaiting state; this is the one failure path that
// doesn't reset to init.
func (h *messageHandler) handleBodyWeight(ctx context.Context, m *tele.Message) (model.ConversationState, error) {
	mass, err := strconv.ParseFloat(strings.TrimSpace(m.Text), 64)
	if err != nil || math.IsNaN(mass) || mass <= 0 || mass >= h.maxBodyWeight {
		_, sendErr := h.b.Send(m.Chat, textInvalidWeight, &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingBodyWeight, sendErr
	}

	today := dayOf(h.now())
	if err := h.records.AddRecord(ctx, m.Chat.ID, today, mass); err != nil {
		return model.StateAwaitingBodyWeight, fmt.Errorf("error adding record: %w", err)
	}

	caption := fmt.Sprintf("Successfully added a new entry:\n<b>%s - %v kg</b>\n",
		today.Format(model.DateFormat), mass)
	if err := h.sendPlot(ctx, m, true, caption); err != nil {
		return model.StateInit, err
	}
	return model.StateInit, nil
}

func (h *messageHandler) handlePlot(ctx context.Context, m *tele.Message, recentOnly bool, caption string) (model.ConversationState, error) {
	if err := h.sendPlot(ctx, m, recentOnly, caption); err != nil {
		return model.StateInit, err
	}
	return model.StateInit, nil
}

// sendPlot renders the user's series (optionally windowed to the trailing
// two weeks) and sends it as a photo with the trend line appended to the
// caption.
func (h *messageHandler) sendPlot(ctx context.Context, m *tele.Message, recentOnly bool, caption string) error {
	records, err := h.records.RecordsByUser(ctx, m.Chat.ID)
	if err != nil {
		return fmt.Errorf("error fetching records: %w", err)
	}

	points := toPoints(records)
	if recentOnly {
		points = trend.LastDays(points, h.now(), recentWindowDays)
	}
	res := trend.Analyze(points, h.threshold)

	png, err := trend.Render(points, res)
	if err != nil {
		return fmt.Errorf("error rendering plot: %w", err)
	}

	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(png)),
		Caption: caption + trendCaption(res),
	}
	_, err = h.b.Send(m.Chat, photo, &tele.SendOptions{
		ReplyTo:     m,
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: defaultMarkup(),
	})
	return err
}

func (h *messageHandler) handleDownload(ctx context.Context, m *tele.Message) (model.ConversationState, error) {
	records, err := h.records.RecordsByUser(ctx, m.Chat.ID)
	if err != nil {
		return model.StateInit, fmt.Errorf("error fetching records: %w", err)
	}

	data, err := csvtable.Marshal(records)
	if err != nil {
		return model.StateInit, fmt.Errorf("error exporting records: %w", err)
	}
	if len(data) == 0 {
		_, err := h.b.Send(m.Chat, textNoDataToDownload, &tele.SendOptions{
			ReplyTo:     m,
			ReplyMarkup: defaultMarkup(),
		})
		return model.StateInit, err
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: exportFileName,
		Caption:  textDownloadCaption,
	}
	_, err = h.b.Send(m.Chat, doc, &tele.SendOptions{
		ReplyTo:     m,
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: defaultMarkup(),
	})
	return model.StateInit, err
}

func (h *messageHandler) handleUpload(m *tele.Message) (model.ConversationState, error) {
	_, err := h.b.Send(m.Chat, textUpload, &tele.SendOptions{ReplyTo: m})
	return model.StateAwaitingCSVTable, err
}

// handleCSVTable imports an uploaded CSV table. The whole file is validated
// before anything is written, and the write is transactional, so a bad row
// commits nothing.
func (h *messageHandler) handleCSVTable(ctx context.Context, m *tele.Message) (model.ConversationState, error) {
	doc := m.Document
	if doc == nil {
		_, err := h.b.Send(m.Chat, textNotADocument, &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, err
	}
	if int64(doc.FileSize) > h.maxFileSize {
		_, err := h.b.Send(m.Chat, textFileTooBig(h.maxFileSize), &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, err
	}

	body, err := h.fetcher.Fetch(ctx, doc.FileID)
	if errors.Is(err, ErrAttachmentTooLarge) {
		_, sendErr := h.b.Send(m.Chat, textFileTooBig(h.maxFileSize), &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, sendErr
	}
	if err != nil {
		h.b.Send(m.Chat, textImportFailure, &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, fmt.Errorf("error fetching attachment: %w", err)
	}
	defer body.Close()

	records, err := csvtable.Parse(body, h.maxBodyWeight)
	var parseErr *csvtable.ParseError
	switch {
	// Checked before the parse-error case: a declared size can lie, and the
	// stream cap tripping mid-download means "too big", not "invalid file".
	case errors.Is(err, ErrAttachmentTooLarge):
		_, sendErr := h.b.Send(m.Chat, textFileTooBig(h.maxFileSize), &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, sendErr
	case errors.As(err, &parseErr):
		h.log.WithField("user_id", m.Chat.ID).WithError(parseErr).Info("rejected csv upload")
		_, sendErr := h.b.Send(m.Chat, textInvalidCSV, &tele.SendOptions{ReplyTo: m})
		return model.StateInit, sendErr
	case err != nil:
		h.b.Send(m.Chat, textImportFailure, &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, fmt.Errorf("error reading attachment: %w", err)
	}

	if err := h.records.AddRecords(ctx, m.Chat.ID, records); err != nil {
		h.b.Send(m.Chat, textImportFailure, &tele.SendOptions{ReplyTo: m})
		return model.StateAwaitingCSVTable, fmt.Errorf("error storing imported records: %w", err)
	}

	if err := h.sendPlot(ctx, m, false, textImportDone); err != nil {
		return model.StateInit, err
	}
	return model.StateInit, nil
}

func (h *messageHandler) handleErase(m *tele.Message) (model.ConversationState, error) {
	_, err := h.b.Send(m.Chat, textEraseWarning, &tele.SendOptions{
		ReplyTo:   m,
		ParseMode: tele.ModeHTML,
	})
	return model.StateAwaitingEraseConfirmation, err
}

// handleEraseConfirmation deletes everything only on an explicit "yes"; the
// erased data is exported first and handed back as a parting backup.
func (h *messageHandler) handleEraseConfirmation(ctx context.Context, m *tele.Message) (model.ConversationState, error) {
	if !strings.EqualFold(strings.TrimSpace(m.Text), confirmationWord) {
		_, err := h.b.Send(m.Chat, textEraseCancelled, &tele.SendOptions{
			ReplyTo:     m,
			ReplyMarkup: defaultMarkup(),
		})
		return model.StateInit, err
	}

	records, err := h.records.RecordsByUser(ctx, m.Chat.ID)
	if err != nil {
		return model.StateInit, fmt.Errorf("error fetching records: %w", err)
	}
	backup, err := csvtable.Marshal(records)
	if err != nil {
		return model.StateInit, fmt.Errorf("error exporting backup: %w", err)
	}

	if err := h.records.DeleteRecords(ctx, m.Chat.ID); err != nil {
		return model.StateInit, fmt.Errorf("error deleting records: %w", err)
	}

	if len(backup) == 0 {
		_, err := h.b.Send(m.Chat, textEraseNoData, &tele.SendOptions{
			ReplyTo:     m,
			ReplyMarkup: defaultMarkup(),
		})
		return model.StateInit, err
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(backup)),
		FileName: exportFileName,
		Caption:  textEraseDone,
	}
	_, err = h.b.Send(m.Chat, doc, &tele.SendOptions{
		ReplyTo:     m,
		ReplyMarkup: defaultMarkup(),
	})
	return model.StateInit, err
}

func (h *messageHandler) handleUnexpectedDocument(m *tele.Message) (model.ConversationState, error) {
	_, err := h.b.Send(m.Chat, textUnexpectedDocument, &tele.SendOptions{
		ReplyTo:     m,
		ReplyMarkup: defaultMarkup(),
	})
	return model.StateInit, err
}
