package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/services"
)

type RankHandler struct {
	pipeline *services.PipelineOrchestrator
	uploads  *UploadReceiver
	log      *zap.Logger
}

func NewRankHandler(pipeline *services.PipelineOrchestrator, uploads *UploadReceiver, log *zap.Logger) *RankHandler {
	return &RankHandler{
		pipeline: pipeline,
		uploads:  uploads,
		log:      log,
	}
}

// HandleRank handles POST /rank. It runs the whole batch and returns the
// stored session.
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	batch, err := h.uploads.Receive(c)
	if err != nil {
		return err
	}
	defer h.uploads.Cleanup(batch.ID)

	session, err := h.pipeline.Start(c.UserContext(), batch).Wait()
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// HandleRankStream handles POST /rank/stream. Events are written as
// server-sent events; the batch keeps running if the client goes away.
func (h *RankHandler) HandleRankStream(c *fiber.Ctx) error {
	batch, err := h.uploads.Receive(c)
	if err != nil {
		return err
	}

	// the request context is recycled once the stream writer takes over
	run := h.pipeline.Start(context.Background(), batch)
	log := h.log.With(zap.String("session_id", run.ID().String()))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.uploads.Cleanup(batch.ID)

		for event := range run.Events() {
			payload, err := json.Marshal(event)
			if err != nil {
				log.Error("failed to encode event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				log.Info("client disconnected, finishing batch without streaming", zap.Error(err))
				break
			}
		}
	}))

	return nil
}
