package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokahr/attendance-backend-go/internal/domain/attendance"
	"github.com/lokahr/attendance-backend-go/internal/domain/company"
	"github.com/lokahr/attendance-backend-go/internal/domain/notification"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
)

// Office in central Jakarta; the inside point sits at the center and the
// outside point ~550m away, well past the 100m radius.
var (
	testOffice = company.OfficeLocation{
		Latitude:  -6.175392,
		Longitude: 106.827153,
		RadiusKm:  0.1,
	}
	insideLat  = -6.175392
	insideLng  = 106.827153
	outsideLat = -6.180392
	outsideLng = 106.827153
)

// ========================================
// FAKES
// ========================================

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]attendance.Record // by id
	byDay   map[string]string            // employee|company|date -> id
	breaks  map[string][]attendance.Break
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]attendance.Record),
		byDay:   make(map[string]string),
		breaks:  make(map[string][]attendance.Break),
	}
}

func dayKey(employeeID, companyID string, date time.Time) string {
	return employeeID + "|" + companyID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(rec.EmployeeID, rec.CompanyID, rec.Date)
	if _, exists := f.byDay[key]; exists {
		return attendance.Record{}, attendance.ErrDuplicateRecord
	}

	f.seq++
	rec.ID = fmt.Sprintf("att-%d", f.seq)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[rec.ID] = rec
	f.byDay[key] = rec.ID
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok || rec.CompanyID != companyID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.byDay[dayKey(employeeID, companyID, date)]
	if !ok {
		return nil, nil
	}
	rec := f.records[id]
	return &rec, nil
}

func (f *fakeAttendanceRepo) CompleteCheckOut(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.records[rec.ID]
	if !ok || stored.CompanyID != rec.CompanyID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	if stored.CheckOutAt != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	stored.CheckOutAt = rec.CheckOutAt
	stored.CheckOutLatitude = rec.CheckOutLatitude
	stored.CheckOutLongitude = rec.CheckOutLongitude
	stored.CheckOutAddress = rec.CheckOutAddress
	stored.CheckOutWithinOffice = rec.CheckOutWithinOffice
	stored.Status = rec.Status
	stored.WorkMinutes = rec.WorkMinutes
	stored.OvertimeMinutes = rec.OvertimeMinutes
	stored.UpdatedAt = time.Now()
	f.records[stored.ID] = stored
	return stored, nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(rec.EmployeeID, rec.CompanyID, rec.Date)
	if id, exists := f.byDay[key]; exists {
		rec.ID = id
	} else {
		f.seq++
		rec.ID = fmt.Sprintf("att-%d", f.seq)
		f.byDay[key] = rec.ID
	}
	rec.UpdatedAt = time.Now()
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[rec.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter, companyID string) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []attendance.Record
	for _, rec := range f.records {
		if rec.CompanyID == companyID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.Filter, companyID string) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []attendance.Record
	for _, rec := range f.records {
		if rec.CompanyID == companyID && rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) AddBreak(ctx context.Context, brk attendance.Break) (attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	brk.ID = fmt.Sprintf("brk-%d", f.seq)
	brk.CreatedAt = time.Now()
	f.breaks[brk.AttendanceID] = append(f.breaks[brk.AttendanceID], brk)
	return brk, nil
}

func (f *fakeAttendanceRepo) CloseBreak(ctx context.Context, attendanceID string, endedAt time.Time) (attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, brk := range f.breaks[attendanceID] {
		if brk.EndedAt == nil {
			brk.EndedAt = &endedAt
			brk.DurationMinutes = int(endedAt.Sub(brk.StartedAt) / time.Minute)
			f.breaks[attendanceID][i] = brk
			return brk, nil
		}
	}
	return attendance.Break{}, attendance.ErrNoOpenBreak
}

func (f *fakeAttendanceRepo) ListBreaks(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]attendance.Break(nil), f.breaks[attendanceID]...), nil
}

func (f *fakeAttendanceRepo) GetOpenBreak(ctx context.Context, attendanceID string) (*attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, brk := range f.breaks[attendanceID] {
		if brk.EndedAt == nil {
			b := brk
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) MissingForDate(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	office   *company.OfficeLocation
	settings company.AttendanceSettings
	holidays map[string]bool
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	office := testOffice
	return &fakeCompanyRepo{
		office:   &office,
		settings: company.DefaultAttendanceSettings(),
		holidays: make(map[string]bool),
	}
}

func (f *fakeCompanyRepo) GetOfficeLocation(ctx context.Context, companyID string) (*company.OfficeLocation, error) {
	return f.office, nil
}

func (f *fakeCompanyRepo) GetAttendanceSettings(ctx context.Context, companyID string) (company.AttendanceSettings, error) {
	return f.settings, nil
}

func (f *fakeCompanyRepo) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return f.holidays[date.Format("2006-01-02")], nil
}

func (f *fakeCompanyRepo) ListActiveCompanyIDs(ctx context.Context) ([]string, error) {
	return []string{"comp-1"}, nil
}

type fakeNotificationService struct {
	mu     sync.Mutex
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotificationService) Queue(ctx context.Context, req notification.CreateNotificationRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, req)
}

func (f *fakeNotificationService) Stop() {}

func (f *fakeNotificationService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queued)
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ========================================
// HELPERS
// ========================================

func authedContext(t *testing.T, role user.Role) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"company_id":  "comp-1",
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type testEnv struct {
	svc      *service
	repo     *fakeAttendanceRepo
	company  *fakeCompanyRepo
	notifier *fakeNotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newFakeAttendanceRepo()
	companyRepo := newFakeCompanyRepo()
	notifier := &fakeNotificationService{}

	svc := NewAttendanceService(fakeTxManager{}, repo, companyRepo, notifier).(*service)
	// Monday 09:00 UTC
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	return &testEnv{svc: svc, repo: repo, company: companyRepo, notifier: notifier}
}

func checkInInside(t *testing.T, env *testEnv, ctx context.Context) attendance.RecordResponse {
	t.Helper()
	result, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: insideLat, Longitude: insideLng})
	require.NoError(t, err)
	return result
}

// ========================================
// CHECK-IN
// ========================================

func TestCheckIn_WithinOffice(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	result, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: insideLat, Longitude: insideLng})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.Equal(t, "2026-03-02", result.Date)
	require.NotNil(t, result.CheckInWithinOffice)
	assert.True(t, *result.CheckInWithinOffice)
	assert.Equal(t, 1, env.notifier.count())
}

func TestCheckIn_OutsideOffice(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	result, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: outsideLat, Longitude: outsideLng})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, result.Status)
	require.NotNil(t, result.CheckInWithinOffice)
	assert.False(t, *result.CheckInWithinOffice)
}

func TestCheckIn_NoOfficeConfigured(t *testing.T) {
	env := newTestEnv(t)
	env.company.office = nil
	ctx := authedContext(t, user.RoleEmployee)

	result, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: insideLat, Longitude: insideLng})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, result.Status)
	require.NotNil(t, result.CheckInWithinOffice)
	assert.False(t, *result.CheckInWithinOffice)
}

func TestCheckIn_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: insideLat, Longitude: insideLng})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_ConcurrentExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: insideLat, Longitude: insideLng})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestCheckIn_InvalidCoordinates(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: 95, Longitude: 200})

	assert.Error(t, err)
}

// ========================================
// CHECK-OUT
// ========================================

func TestCheckOut_ComputesWorkMinutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	// 17:30 gives 510 raw minutes, 30 over the 480 standard day.
	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC) }

	result, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, result.Status)
	require.NotNil(t, result.WorkMinutes)
	assert.Equal(t, 510, *result.WorkMinutes)
	require.NotNil(t, result.OvertimeMinutes)
	assert.Equal(t, 30, *result.OvertimeMinutes)
	assert.NotNil(t, result.CheckOutTime)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	_, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})

	assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)
}

func TestCheckOut_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC) }
	_, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_HalfDayDowngrade(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	// 3 hours worked, below the 240 minute half-day threshold.
	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }

	result, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, result.Status)
}

func TestCheckOut_SubtractsBreaks(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	_, err := env.svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC) }
	_, err = env.svc.EndBreak(ctx)
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC) }
	result, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})

	assert.NoError(t, err)
	require.NotNil(t, result.WorkMinutes)
	// 8 hours minus the 60 minute break.
	assert.Equal(t, 420, *result.WorkMinutes)
}

func TestCheckOut_AutoClosesDanglingBreak(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC) }
	_, err := env.svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)

	// Check-out with the break still open: it closes at 17:00 for a 60
	// minute duration.
	env.svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC) }
	result, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: insideLat, Longitude: insideLng})

	assert.NoError(t, err)
	require.NotNil(t, result.WorkMinutes)
	assert.Equal(t, 420, *result.WorkMinutes)

	open, err := env.repo.GetOpenBreak(ctx, result.ID)
	assert.NoError(t, err)
	assert.Nil(t, open)
}

// ========================================
// BREAKS
// ========================================

func TestStartBreak_SecondOpenBreakRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	_, err := env.svc.StartBreak(ctx, attendance.StartBreakRequest{})
	require.NoError(t, err)

	_, err = env.svc.StartBreak(ctx, attendance.StartBreakRequest{})

	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
}

func TestStartBreak_WithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	_, err := env.svc.StartBreak(ctx, attendance.StartBreakRequest{})

	assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)
}

func TestEndBreak_NoOpenBreak(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	_, err := env.svc.EndBreak(ctx)

	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)
}

// ========================================
// MANUAL ENTRY
// ========================================

func TestManualEntry_RequiresManagerRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	_, err := env.svc.ManualEntry(ctx, attendance.ManualEntryRequest{
		EmployeeID: "emp-2",
		Date:       "2026-03-01",
		Status:     "ABSENT",
		Reason:     "forgot badge",
	})

	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestManualEntry_RecomputesWorkMinutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleManager)

	checkIn := "2026-03-01T09:00:00Z"
	checkOut := "2026-03-01T18:00:00Z"
	result, err := env.svc.ManualEntry(ctx, attendance.ManualEntryRequest{
		EmployeeID:   "emp-2",
		Date:         "2026-03-01",
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       "present",
		Reason:       "terminal was down",
	})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.True(t, result.IsManualEntry)
	require.NotNil(t, result.WorkMinutes)
	assert.Equal(t, 540, *result.WorkMinutes)
	require.NotNil(t, result.OvertimeMinutes)
	assert.Equal(t, 60, *result.OvertimeMinutes)
	require.NotNil(t, result.ApprovedBy)
	assert.Equal(t, "emp-1", *result.ApprovedBy)
}

func TestManualEntry_OverwritesExistingRecord(t *testing.T) {
	env := newTestEnv(t)
	employeeCtx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, employeeCtx)

	managerCtx := authedContext(t, user.RoleManager)
	result, err := env.svc.ManualEntry(managerCtx, attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		Status:     "ON_LEAVE",
		Reason:     "approved sick leave",
	})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, result.Status)

	records, total, err := env.repo.ListByEmployee(context.Background(), "emp-1", attendance.Filter{}, "comp-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, attendance.StatusOnLeave, records[0].Status)
}

func TestManualEntry_OverwriteStaysNetOfStoredBreaks(t *testing.T) {
	env := newTestEnv(t)
	employeeCtx := authedContext(t, user.RoleEmployee)
	checkedIn := checkInInside(t, env, employeeCtx)

	// A closed break survives the overwrite; the recomputed figures must
	// still subtract it.
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)
	_, err := env.repo.AddBreak(context.Background(), attendance.Break{
		AttendanceID:    checkedIn.ID,
		StartedAt:       start,
		EndedAt:         &end,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	managerCtx := authedContext(t, user.RoleManager)
	checkIn := "2026-03-02T09:00:00Z"
	checkOut := "2026-03-02T18:00:00Z"
	result, err := env.svc.ManualEntry(managerCtx, attendance.ManualEntryRequest{
		EmployeeID:   "emp-1",
		Date:         "2026-03-02",
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       "present",
		Reason:       "checkout terminal offline",
	})

	assert.NoError(t, err)
	require.NotNil(t, result.WorkMinutes)
	assert.Equal(t, 480, *result.WorkMinutes)
	require.NotNil(t, result.OvertimeMinutes)
	assert.Equal(t, 0, *result.OvertimeMinutes)
}

func TestManualEntry_MissingReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleManager)

	_, err := env.svc.ManualEntry(ctx, attendance.ManualEntryRequest{
		EmployeeID: "emp-2",
		Date:       "2026-03-01",
		Status:     "ABSENT",
	})

	assert.Error(t, err)
}

// ========================================
// READS
// ========================================

func TestGetMyAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)
	checkInInside(t, env, ctx)

	result, err := env.svc.GetMyAttendance(ctx, attendance.Filter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, "emp-1", result.Records[0].EmployeeID)
}

func TestListAttendance_RequiresManagerRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedContext(t, user.RoleEmployee)

	_, err := env.svc.ListAttendance(ctx, attendance.Filter{})

	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestGetRecord_OtherEmployeeHidden(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.repo.CreateIfAbsent(context.Background(), attendance.Record{
		EmployeeID: "emp-2",
		CompanyID:  "comp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	ctx := authedContext(t, user.RoleEmployee)
	_, err = env.svc.GetRecord(ctx, rec.ID)

	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	managerCtx := authedContext(t, user.RoleManager)
	result, err := env.svc.GetRecord(managerCtx, rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, "emp-2", result.EmployeeID)
}
