package handlers

import (
	"net/http"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/quiz"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	log     *zap.Logger
	history *repository.HistoryRepository
}

func NewHistoryHandler(log *zap.Logger, history *repository.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{log: log, history: history}
}

// List returns the signed-in user's attempts, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	entries, err := h.history.ForUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to get history", zap.Error(err), zap.String("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Chart returns echarts options for the user's scores over time. Without a
// topic query parameter every topic gets its own series.
func (h *HistoryHandler) Chart(c *gin.Context) {
	userID := currentUserID(c)
	topic := c.Query("topic")
	if topic != "" {
		if _, ok := quiz.CollectionFor(topic); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topic."})
			return
		}
	}

	points, err := h.history.Timeline(c.Request.Context(), userID, topic)
	if err != nil {
		h.log.Error("Failed to get timeline data", zap.Error(err), zap.String("userID", userID), zap.String("topic", topic))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": generateTimelineChart(points, topic).JSON()})
}

func generateTimelineChart(data []repository.ScorePoint, topic string) *charts.Line {
	subtitle := topic
	if subtitle == "" {
		subtitle = "All topics"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Score Over Time",
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  0,
			Max:  100,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	// One series per topic, in the order topics are offered.
	series := map[string][]opts.LineData{}
	for _, point := range data {
		series[point.Topic] = append(series[point.Topic], opts.LineData{Value: []interface{}{point.Timestamp, point.Percentage}})
	}
	for _, name := range quiz.Topics() {
		items, ok := series[name]
		if !ok {
			continue
		}
		line.AddSeries(name, items)
	}
	line.SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
