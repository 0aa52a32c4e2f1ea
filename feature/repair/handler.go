package repair

import (
	"bytes"
	"strconv"

	"mesh-doctor/core/logger"
	"mesh-doctor/core/mesh"
	"mesh-doctor/feature/stl"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the repair engine over HTTP. The request body is an
// STL mesh (binary or ASCII); query parameters mirror the CLI flags.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes registers the mesh routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/mesh")
	group.Post("/repair", h.HandleRepair)
	group.Post("/inspect", h.HandleInspect)
}

// optionsFromQuery maps query parameters onto repair Options. A
// parameter that is absent leaves its default derivation in place.
func optionsFromQuery(c *fiber.Ctx) Options {
	opts := Options{
		FixAll:            c.QueryBool("fix-all", true),
		ExactCheck:        c.QueryBool("exact", false),
		Nearby:            c.QueryBool("nearby", false),
		RemoveUnconnected: c.QueryBool("remove-unconnected", false),
		FillHoles:         c.QueryBool("fill-holes", false),
		ReverseAll:        c.QueryBool("reverse-all", false),
		NormalDirections:  c.QueryBool("normal-directions", false),
		NormalValues:      c.QueryBool("normal-values", false),
		Iterations:        c.QueryInt("iterations", 0),
	}
	if v := c.Query("tolerance"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Tolerance = f
			opts.ToleranceSet = true
		}
	}
	if v := c.Query("increment"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Increment = f
			opts.IncrementSet = true
		}
	}
	return opts
}

// HandleRepair repairs the uploaded mesh and returns it.
// The repaired mesh is written back in the body, binary by default or
// ASCII with ?ascii=true; defect diagnostics travel in the
// X-Mesh-Defects header count.
func (h *Handler) HandleRepair(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	facets, declared, err := stl.Read(bytes.NewReader(c.Body()))
	if err != nil {
		l.Warn("Failed to parse uploaded mesh", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	store, err := mesh.Load(facets, declared)
	if err != nil {
		l.Warn("Uploaded mesh is inconsistent", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	collector := &CollectingReporter{}
	svc := NewService(store, l, collector)
	if err := svc.Repair(optionsFromQuery(c)); err != nil {
		l.Error("Repair failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	st := store.Stats
	l.Info("Repair completed",
		zap.Int("facets", st.FacetCount),
		zap.Float64("volume", st.Volume),
		zap.Int("edges_fixed", st.EdgesFixed),
		zap.Int("defects", len(collector.Defects)),
	)

	var out bytes.Buffer
	if c.QueryBool("ascii", false) {
		err = stl.WriteASCII(&out, store.Export(), "repaired")
	} else {
		err = stl.WriteBinary(&out, store.Export(), "mesh-doctor repaired")
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "model/stl")
	c.Set("X-Mesh-Facets", strconv.Itoa(st.FacetCount))
	c.Set("X-Mesh-Volume", strconv.FormatFloat(st.Volume, 'g', -1, 64))
	c.Set("X-Mesh-Defects", strconv.Itoa(len(collector.Defects)))
	return c.Send(out.Bytes())
}

// HandleInspect runs exact matching and verification against the
// uploaded mesh without repairing it and returns the statistics and
// diagnostics as JSON.
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	facets, declared, err := stl.Read(bytes.NewReader(c.Body()))
	if err != nil {
		l.Warn("Failed to parse uploaded mesh", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	store, err := mesh.Load(facets, declared)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	collector := &CollectingReporter{}
	svc := NewService(store, l, collector)
	if err := svc.CheckExact(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err := svc.CalculateVolume(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err := svc.VerifyNeighbors(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"stats":   store.Stats,
		"defects": collector.Defects,
	})
}
