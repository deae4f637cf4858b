package bot

import (
	"errors"

	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
)

// ErrInvalidState means the dispatch table was handed a conversation state
// it has no branch for. States are only reachable through defined
// transitions, so this is a programming error, never user input.
var ErrInvalidState = errors.New("conversation state has no dispatch branch")

type action int

const (
	actionNone action = iota
	actionInfo
	actionEnterWeight
	actionShowMenu
	actionPlotRecent
	actionPlotAll
	actionDownload
	actionUpload
	actionErase
	actionParseWeight
	actionConfirmErase
	actionImportCSV
	actionUnexpectedDocument
)

var actionNames = map[action]string{
	actionNone:               "none",
	actionInfo:               "info",
	actionEnterWeight:        "enter_weight",
	actionShowMenu:           "show_menu",
	actionPlotRecent:         "plot_recent",
	actionPlotAll:            "plot_all",
	actionDownload:           "download",
	actionUpload:             "upload",
	actionErase:              "erase",
	actionParseWeight:        "parse_weight",
	actionConfirmErase:       "confirm_erase",
	actionImportCSV:          "import_csv",
	actionUnexpectedDocument: "unexpected_document",
}

func (a action) String() string { return actionNames[a] }

// route maps an incoming message to the action that handles it. Global
// commands win over state-specific handling, so e.g. /erase interrupts a
// pending weight entry. Empty text is a no-op unless a document arrived or a
// CSV table is awaited.
func route(state model.ConversationState, text string, hasDocument bool) (action, error) {
	if text != "" {
		if a, ok := globalCommand(text); ok {
			return a, nil
		}
		switch state {
		case model.StateAwaitingBodyWeight:
			return actionParseWeight, nil
		case model.StateAwaitingEraseConfirmation:
			return actionConfirmErase, nil
		case model.StateAwaitingCSVTable:
			return actionImportCSV, nil
		}
		if hasDocument {
			return actionUnexpectedDocument, nil
		}
		if state == model.StateInit {
			return actionShowMenu, nil
		}
		return actionNone, ErrInvalidState
	}

	if state == model.StateAwaitingCSVTable {
		return actionImportCSV, nil
	}
	if hasDocument {
		return actionUnexpectedDocument, nil
	}
	return actionNone, nil
}

func globalCommand(text string) (action, bool) {
	switch text {
	case cmdInfo:
		return actionInfo, true
	case cmdEnterWeight, btnEnterWeight:
		return actionEnterWeight, true
	case cmdStart, btnShowMenu:
		return actionShowMenu, true
	case cmdPlot:
		return actionPlotRecent, true
	case cmdPlotAll:
		return actionPlotAll, true
	case cmdDownload:
		return actionDownload, true
	case cmdUpload:
		return actionUpload, true
	case cmdErase:
		return actionErase, true
	}
	return actionNone, false
}
