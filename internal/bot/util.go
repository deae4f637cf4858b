package bot

import (
	"fmt"
	"math"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
	"github.com/clavicordio/bodymass-telegram-bot/internal/trend"
)

func formatKilobytes(bytes int64) string {
	return fmt.Sprintf("%d", bytes/1024)
}

// dayOf truncates a timestamp to calendar-day granularity in UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toPoints(records []model.MassRecord) []trend.Point {
	points := make([]trend.Point, len(records))
	for i, r := range records {
		points[i] = trend.Point{Date: r.Date, Mass: r.Mass}
	}
	return points
}

// trendCaption renders the surplus/deficit/maintaining line appended to plot
// captions. Empty when the series is too short for a regression.
func trendCaption(res trend.Result) string {
	if !res.HasTrend {
		return ""
	}
	switch res.Class {
	case trend.Surplus:
		return fmt.Sprintf("\nYou are currently in a <i>calorie surplus</i>.\n"+
			"You are gaining weight at an average rate of <i>%.2f kg/week</i>\n", res.WeeklyRate)
	case trend.Deficit:
		return fmt.Sprintf("\nYou are currently in a <i>calorie deficit</i>.\n"+
			"You are losing weight at an average rate of <i>%.2f kg/week</i>\n", math.Abs(res.WeeklyRate))
	default:
		return "\nYou are currently <i>maintaining</i> your weight.\n"
	}
}

// defaultMarkup is the two-button reply keyboard attached to most replies.
func defaultMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	btnEnter := markup.Text(btnEnterWeight)
	btnMenu := markup.Text(btnShowMenu)
	markup.Reply(markup.Row(btnEnter, btnMenu))
	return markup
}
