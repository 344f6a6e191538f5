package memory

import (
	"context"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/settings"
)

type attendanceRepository struct{ s *Store }

func (s *Store) Attendance() attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func cloneDay(d attendance.Day) attendance.Day {
	out := make(attendance.Day, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (r *attendanceRepository) GetDay(ctx context.Context, date time.Time) (attendance.Day, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneDay(r.s.days[date.Format(attendance.DateLayout)]), nil
}

func (r *attendanceRepository) GetDayForUpdate(ctx context.Context, date time.Time) (attendance.Day, error) {
	return r.GetDay(ctx, date)
}

func (r *attendanceRepository) SetEntry(ctx context.Context, date time.Time, key string, entry attendance.Entry) error {
	return r.SetEntries(ctx, date, attendance.Day{key: entry})
}

func (r *attendanceRepository) SetEntries(ctx context.Context, date time.Time, entries attendance.Day) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := date.Format(attendance.DateLayout)
	day := r.s.days[k]
	if day == nil {
		day = attendance.Day{}
	}
	for key, e := range entries {
		day[key] = e
	}
	r.s.days[k] = day
	return nil
}

func (r *attendanceRepository) ReplaceDay(ctx context.Context, date time.Time, day attendance.Day) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.days[date.Format(attendance.DateLayout)] = cloneDay(day)
	return nil
}

func (r *attendanceRepository) ListRange(ctx context.Context, from, to time.Time) (map[string]attendance.Day, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lo, hi := from.Format(attendance.DateLayout), to.Format(attendance.DateLayout)
	out := make(map[string]attendance.Day)
	for k, d := range r.s.days {
		if k >= lo && k <= hi {
			out[k] = cloneDay(d)
		}
	}
	return out, nil
}

func (r *attendanceRepository) ListAll(ctx context.Context) (map[string]attendance.Day, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]attendance.Day, len(r.s.days))
	for k, d := range r.s.days {
		out[k] = cloneDay(d)
	}
	return out, nil
}

func (r *attendanceRepository) CountDays(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.days), nil
}

type settingsRepository struct{ s *Store }

func (s *Store) Settings() settings.SettingsRepository {
	return &settingsRepository{s: s}
}

func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		return settings.Settings{}, false, nil
	}
	return *r.s.settings, true, nil
}

func (r *settingsRepository) GetForUpdate(ctx context.Context) (settings.Settings, bool, error) {
	return r.Get(ctx)
}

func (r *settingsRepository) Save(ctx context.Context, s settings.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings = &s
	return nil
}
