package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"repair-app/internal/models"
)

type fakeProjectStore struct {
	projects []models.Project
	counts   map[string]int
}

func (f *fakeProjectStore) Create(ctx context.Context, project *models.Project) error {
	f.projects = append(f.projects, *project)
	return nil
}

func (f *fakeProjectStore) ListByIntegrator(ctx context.Context, integratorID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.IntegratorID == integratorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) FindByID(ctx context.Context, integratorID, projectID string) (*models.Project, error) {
	for i := range f.projects {
		if f.projects[i].IntegratorID == integratorID && f.projects[i].ProjectID == projectID {
			return &f.projects[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeProjectStore) CountByIntegrator(ctx context.Context, integratorID string) (int64, error) {
	n, _ := f.ListByIntegrator(ctx, integratorID)
	return int64(len(n)), nil
}

func (f *fakeProjectStore) SetDeviceCount(ctx context.Context, projectID string, count int) error {
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[projectID] = count
	return nil
}

type fakeDeviceStore struct {
	devices []models.Device
}

func (f *fakeDeviceStore) InsertMany(ctx context.Context, devices []models.Device) (int, error) {
	inserted := 0
	for _, d := range devices {
		dup := false
		for _, existing := range f.devices {
			if existing.SerialNumber == d.SerialNumber {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.devices = append(f.devices, d)
		inserted++
	}
	return inserted, nil
}

func (f *fakeDeviceStore) ListByProject(ctx context.Context, projectID string) ([]models.DeviceSummary, error) {
	var out []models.DeviceSummary
	for _, d := range f.devices {
		if d.ProjectID == projectID {
			out = append(out, models.DeviceSummary{
				SerialNumber: d.SerialNumber,
				ProductType:  d.ProductType,
				Status:       d.Status,
				FaultHistory: d.FaultHistory,
			})
		}
	}
	return out, nil
}

func (f *fakeDeviceStore) ListByIntegrator(ctx context.Context, integratorID string) ([]models.Device, error) {
	var out []models.Device
	for _, d := range f.devices {
		if d.IntegratorID == integratorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeviceStore) CountByProject(ctx context.Context, projectID string) (int64, error) {
	n, _ := f.ListByProject(ctx, projectID)
	return int64(len(n)), nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestFaultStats_EmptyFleet(t *testing.T) {
	svc := NewIntegratorService(&fakeProjectStore{}, &fakeDeviceStore{})
	svc.now = fixedNow

	stats, err := svc.FaultStats(context.Background(), "int-1")
	if err != nil {
		t.Fatalf("FaultStats returned %v", err)
	}

	if stats.TotalDevices != 0 || stats.TotalFaults != 0 {
		t.Errorf("totals = %+v, want zero", stats)
	}
	// Every device status appears, zero-filled.
	if len(stats.DeviceStatusBreakdown) != len(models.DeviceStatuses) {
		t.Errorf("status breakdown = %v", stats.DeviceStatusBreakdown)
	}
	// The trend always spans six months, zero-filled, oldest first.
	wantMonths := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	if len(stats.FaultTrends) != 6 {
		t.Fatalf("trend length = %d, want 6", len(stats.FaultTrends))
	}
	for i, bucket := range stats.FaultTrends {
		if bucket.Month != wantMonths[i] || bucket.Faults != 0 {
			t.Errorf("trend[%d] = %+v, want {%s 0}", i, bucket, wantMonths[i])
		}
	}
	if len(stats.CommonFaults) != 0 {
		t.Errorf("common faults = %v, want empty", stats.CommonFaults)
	}
}

func TestFaultStats_Aggregation(t *testing.T) {
	devices := &fakeDeviceStore{devices: []models.Device{
		{
			SerialNumber: "D1", IntegratorID: "int-1", Status: models.DeviceFaulty,
			FaultHistory: []models.FaultEntry{
				{FaultType: "Display", Status: models.FaultOpen, ReportedDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
				{FaultType: "Display", Status: models.FaultResolved, ReportedDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			SerialNumber: "D2", IntegratorID: "int-1", Status: models.DeviceOperational,
			FaultHistory: []models.FaultEntry{
				{FaultType: "Battery", Status: models.FaultResolved, ReportedDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
				{FaultType: "", Status: models.FaultInProgress, ReportedDate: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		{SerialNumber: "D3", IntegratorID: "other", Status: models.DeviceReplaced},
	}}
	svc := NewIntegratorService(&fakeProjectStore{}, devices)
	svc.now = fixedNow

	stats, err := svc.FaultStats(context.Background(), "int-1")
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalDevices != 2 {
		t.Errorf("TotalDevices = %d, want 2 (other integrator excluded)", stats.TotalDevices)
	}
	if stats.TotalFaults != 4 || stats.ResolvedFaults != 2 || stats.OpenFaults != 2 {
		t.Errorf("fault totals = %+v", stats)
	}
	if stats.DeviceStatusBreakdown[models.DeviceFaulty] != 1 ||
		stats.DeviceStatusBreakdown[models.DeviceOperational] != 1 ||
		stats.DeviceStatusBreakdown[models.DeviceReplaced] != 0 {
		t.Errorf("status breakdown = %v", stats.DeviceStatusBreakdown)
	}

	// June has two faults, May one; December 2024 is outside the window.
	if got := stats.FaultTrends[5]; got.Month != "Jun" || got.Faults != 2 {
		t.Errorf("June bucket = %+v", got)
	}
	if got := stats.FaultTrends[4]; got.Month != "May" || got.Faults != 1 {
		t.Errorf("May bucket = %+v", got)
	}
	if got := stats.FaultTrends[0]; got.Faults != 0 {
		t.Errorf("oldest bucket = %+v, want zero", got)
	}

	// Display (2) outranks Battery (1); the blank type counts as Unknown.
	want := []models.FaultTypeCount{
		{FaultType: "Display", Count: 2},
		{FaultType: "Battery", Count: 1},
		{FaultType: "Unknown", Count: 1},
	}
	if !reflect.DeepEqual(stats.CommonFaults, want) {
		t.Errorf("common faults = %v, want %v", stats.CommonFaults, want)
	}
}

func TestFaultStats_TopTenStableTies(t *testing.T) {
	var history []models.FaultEntry
	// Twelve distinct fault types with one occurrence each; first-seen order
	// must decide the ranking and only ten survive.
	names := []string{"F01", "F02", "F03", "F04", "F05", "F06", "F07", "F08", "F09", "F10", "F11", "F12"}
	for _, n := range names {
		history = append(history, models.FaultEntry{FaultType: n, Status: models.FaultOpen, ReportedDate: fixedNow()})
	}
	devices := &fakeDeviceStore{devices: []models.Device{
		{SerialNumber: "D1", IntegratorID: "int-1", Status: models.DeviceFaulty, FaultHistory: history},
	}}
	svc := NewIntegratorService(&fakeProjectStore{}, devices)
	svc.now = fixedNow

	stats, err := svc.FaultStats(context.Background(), "int-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.CommonFaults) != 10 {
		t.Fatalf("common faults length = %d, want 10", len(stats.CommonFaults))
	}
	for i := 0; i < 10; i++ {
		if stats.CommonFaults[i].FaultType != names[i] {
			t.Errorf("rank %d = %q, want %q", i, stats.CommonFaults[i].FaultType, names[i])
		}
	}
}

func TestCreateProject(t *testing.T) {
	projects := &fakeProjectStore{}
	svc := NewIntegratorService(projects, &fakeDeviceStore{})

	created, err := svc.CreateProject(context.Background(), "integ-77", &models.Project{
		Name:     "Metro Substation",
		Location: "Pune",
	})
	if err != nil {
		t.Fatalf("CreateProject returned %v", err)
	}
	if created.ProjectID != "PROJ-INTE-001" {
		t.Errorf("project id = %q, want PROJ-INTE-001", created.ProjectID)
	}
	if created.IntegratorID != "integ-77" || created.NumberOfDevices != 0 {
		t.Errorf("created = %+v", created)
	}

	second, err := svc.CreateProject(context.Background(), "integ-77", &models.Project{
		Name:     "Airport Wing B",
		Location: "Pune",
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.ProjectID != "PROJ-INTE-002" {
		t.Errorf("second project id = %q, want sequence 002", second.ProjectID)
	}
}

func TestAddDevices(t *testing.T) {
	projects := &fakeProjectStore{projects: []models.Project{
		{ProjectID: "PROJ-INTE-001", IntegratorID: "integ-77", Name: "Metro"},
	}}
	devices := &fakeDeviceStore{devices: []models.Device{
		{SerialNumber: "DUP-1", ProjectID: "PROJ-INTE-001", IntegratorID: "integ-77", ProductType: "UPS"},
	}}
	svc := NewIntegratorService(projects, devices)

	inserted, err := svc.AddDevices(context.Background(), "integ-77", "PROJ-INTE-001", []models.Device{
		{SerialNumber: "DUP-1", ProductType: "UPS"},
		{SerialNumber: "NEW-2", ProductType: "UPS"},
	})
	if err != nil {
		t.Fatalf("AddDevices returned %v", err)
	}
	if inserted != 1 {
		t.Errorf("inserted = %d, want 1 (duplicate serial skipped)", inserted)
	}
	if projects.counts["PROJ-INTE-001"] != 2 {
		t.Errorf("device count = %d, want 2", projects.counts["PROJ-INTE-001"])
	}

	// Devices get stamped with the owning project and integrator.
	last := devices.devices[len(devices.devices)-1]
	if last.ProjectID != "PROJ-INTE-001" || last.IntegratorID != "integ-77" {
		t.Errorf("inserted device not stamped: %+v", last)
	}
}

func TestAddDevices_Validation(t *testing.T) {
	projects := &fakeProjectStore{projects: []models.Project{
		{ProjectID: "P1", IntegratorID: "integ-77", Name: "Metro"},
	}}
	svc := NewIntegratorService(projects, &fakeDeviceStore{})

	if _, err := svc.AddDevices(context.Background(), "integ-77", "P1", nil); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty batch err = %v, want validation error", err)
	}
	if _, err := svc.AddDevices(context.Background(), "integ-77", "MISSING", []models.Device{
		{SerialNumber: "X", ProductType: "UPS"},
	}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown project err = %v, want not found", err)
	}
	if _, err := svc.AddDevices(context.Background(), "other", "P1", []models.Device{
		{SerialNumber: "X", ProductType: "UPS"},
	}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("foreign project err = %v, want not found", err)
	}
}

func TestListProjectsWithDevices(t *testing.T) {
	projects := &fakeProjectStore{projects: []models.Project{
		{ProjectID: "P1", IntegratorID: "integ-77", Name: "Metro", NumberOfDevices: 99, OpenRequests: 99},
	}}
	devices := &fakeDeviceStore{devices: []models.Device{
		{SerialNumber: "D1", ProjectID: "P1", IntegratorID: "integ-77", Status: models.DeviceFaulty,
			FaultHistory: []models.FaultEntry{
				{FaultType: "Display", Status: models.FaultOpen},
				{FaultType: "Battery", Status: models.FaultResolved},
			}},
		{SerialNumber: "D2", ProjectID: "P1", IntegratorID: "integ-77", Status: models.DeviceOperational},
	}}
	svc := NewIntegratorService(projects, devices)

	got, err := svc.ListProjectsWithDevices(context.Background(), "integ-77")
	if err != nil {
		t.Fatalf("ListProjectsWithDevices returned %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("projects = %d, want 1", len(got))
	}
	// Stored counters are ignored; counts are recomputed from the devices.
	if got[0].NumberOfDevices != 2 || got[0].OpenRequests != 1 {
		t.Errorf("recomputed counts = %d devices, %d open", got[0].NumberOfDevices, got[0].OpenRequests)
	}
	if len(got[0].Devices) != 2 {
		t.Errorf("embedded devices = %d, want 2", len(got[0].Devices))
	}
}
