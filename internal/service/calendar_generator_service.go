package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
)

// regularPeriodDays is the nominal length of a billing cycle: 4 whole
// weeks starting on a month's first Monday.
const regularPeriodDays = 28

var monthNames = [13]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// seasonNamePool is the fixed ordered pool seasons draw their names
// from. Years producing more seasons than the pool holds fall back to
// a numbered name instead of indexing out of bounds.
var seasonNamePool = []string{"Verano", "Otoño", "Invierno", "Primavera"}

func seasonName(index int) string {
	if index < len(seasonNamePool) {
		return seasonNamePool[index]
	}
	return fmt.Sprintf("Temporada %d", index+1)
}

func firstMondayOnOrAfter(t time.Time) time.Time {
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// GenerateYear partitions a calendar year into regular 28-day periods
// and leftover special weeks, grouped into named seasons.
//
// Regular periods are generated month by month, each anchored on the
// month's first Monday. Because generation is per-month rather than by
// chaining 28-day blocks, two consecutive periods can overlap by a few
// days when one month's period runs past the next month's first
// Monday. That overlap is a known property of the calendar; the
// current-period lookup breaks ties by latest start date. Do not
// "fix" it here by chaining periods without product sign-off.
func GenerateYear(year int, activateCurrent bool, now time.Time) ([]models.AcademicPeriod, []models.Season) {
	var regulars []models.AcademicPeriod
	for month := time.January; month <= time.December; month++ {
		start := firstMondayOnOrAfter(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
		regulars = append(regulars, models.AcademicPeriod{
			Name:      fmt.Sprintf("Período %s %d", monthNames[month], year),
			Year:      year,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, regularPeriodDays-1),
		})
	}

	// Walk the year week by week; weeks not fully inside any regular
	// period are the leftover special weeks.
	var specials []models.AcademicPeriod
	for monday := firstMondayOnOrAfter(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)); monday.Year() == year; monday = monday.AddDate(0, 0, 7) {
		weekEnd := monday.AddDate(0, 0, 6)
		covered := false
		for _, p := range regulars {
			if !p.StartDate.After(monday) && !p.EndDate.Before(weekEnd) {
				covered = true
				break
			}
		}
		if !covered {
			specials = append(specials, models.AcademicPeriod{
				Name:          fmt.Sprintf("Semana especial del %s", monday.Format("02/01")),
				Year:          year,
				StartDate:     monday,
				EndDate:       weekEnd,
				IsSpecialWeek: true,
			})
		}
	}

	seasons := buildSeasons(year, regulars, specials)

	periods := make([]models.AcademicPeriod, 0, len(regulars)+len(specials))
	periods = append(periods, regulars...)
	periods = append(periods, specials...)

	for i := range periods {
		periods[i].SeasonID = assignSeason(seasons, periods[i])
		if activateCurrent && periods[i].Contains(now) {
			periods[i].IsActive = true
		}
	}

	return periods, seasons
}

// buildSeasons derives season boundaries from the special weeks: each
// special week closes a season. With no special weeks the whole year is
// a single season.
func buildSeasons(year int, regulars, specials []models.AcademicPeriod) []models.Season {
	if len(regulars) == 0 {
		return nil
	}
	firstStart := regulars[0].StartDate
	lastEnd := regulars[len(regulars)-1].EndDate

	var seasons []models.Season
	appendSeason := func(start, end time.Time) {
		if start.After(end) {
			return
		}
		seasons = append(seasons, models.Season{
			ID:        uuid.NewString(),
			Name:      seasonName(len(seasons)),
			Year:      year,
			StartDate: start,
			EndDate:   end,
		})
	}

	if len(specials) == 0 {
		appendSeason(firstStart, lastEnd)
		return seasons
	}

	appendSeason(firstStart, specials[0].EndDate)
	for i := 1; i < len(specials); i++ {
		appendSeason(specials[i-1].EndDate.AddDate(0, 0, 1), specials[i].EndDate)
	}
	appendSeason(specials[len(specials)-1].EndDate.AddDate(0, 0, 1), lastEnd)

	return seasons
}

// assignSeason places a period into the season whose range contains its
// start or end date, defaulting to the first season.
func assignSeason(seasons []models.Season, period models.AcademicPeriod) string {
	for _, s := range seasons {
		startsIn := !period.StartDate.Before(s.StartDate) && !period.StartDate.After(s.EndDate)
		endsIn := !period.EndDate.Before(s.StartDate) && !period.EndDate.After(s.EndDate)
		if startsIn || endsIn {
			return s.ID
		}
	}
	if len(seasons) > 0 {
		return seasons[0].ID
	}
	return ""
}

type calendarWriter interface {
	ReplaceYear(ctx context.Context, year int, seasons []models.Season, periods []models.AcademicPeriod) error
}

type calendarCacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// GenerateCalendarRequest describes the calendar generation payload.
type GenerateCalendarRequest struct {
	Year            int  `json:"year" validate:"required,min=2000,max=2100"`
	ActivateCurrent bool `json:"activate_current"`
}

// CalendarGeneratorService runs the partitioner and persists its output.
type CalendarGeneratorService struct {
	repo      calendarWriter
	cache     calendarCacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarGeneratorService creates the service.
func NewCalendarGeneratorService(repo calendarWriter, cache calendarCacheInvalidator, validate *validator.Validate, logger *zap.Logger) *CalendarGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarGeneratorService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Generate builds the requested year's calendar and replaces whatever
// is stored for that year. A new generation run always replaces the
// previous set; periods are never mutated in place.
func (s *CalendarGeneratorService) Generate(ctx context.Context, now time.Time, req GenerateCalendarRequest) ([]models.AcademicPeriod, []models.Season, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calendar generation payload")
	}

	periods, seasons := GenerateYear(req.Year, req.ActivateCurrent, now)

	if err := s.repo.ReplaceYear(ctx, req.Year, seasons, periods); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist generated calendar")
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("calendar:%d:*", req.Year)); err != nil {
			s.logger.Warn("failed to invalidate calendar cache", zap.Int("year", req.Year), zap.Error(err))
		}
	}

	s.logger.Info("academic calendar generated",
		zap.Int("year", req.Year),
		zap.Int("periods", len(periods)),
		zap.Int("seasons", len(seasons)),
	)

	return periods, seasons, nil
}
