package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"repair-app/internal/models"
	"repair-app/internal/utils"
)

const (
	trendMonths      = 6
	topCommonFaults  = 10
	unknownFaultType = "Unknown"
)

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	ListByIntegrator(ctx context.Context, integratorID string) ([]models.Project, error)
	FindByID(ctx context.Context, integratorID, projectID string) (*models.Project, error)
	CountByIntegrator(ctx context.Context, integratorID string) (int64, error)
	SetDeviceCount(ctx context.Context, projectID string, count int) error
}

type DeviceStore interface {
	InsertMany(ctx context.Context, devices []models.Device) (int, error)
	ListByProject(ctx context.Context, projectID string) ([]models.DeviceSummary, error)
	ListByIntegrator(ctx context.Context, integratorID string) ([]models.Device, error)
	CountByProject(ctx context.Context, projectID string) (int64, error)
}

type IntegratorService struct {
	projects ProjectStore
	devices  DeviceStore
	now      func() time.Time
}

func NewIntegratorService(projects ProjectStore, devices DeviceStore) *IntegratorService {
	return &IntegratorService{projects: projects, devices: devices, now: time.Now}
}

// ListProjectsWithDevices returns the integrator's projects with device lists
// attached. numberOfDevices and openRequests are recomputed on every read so
// they never go stale.
func (s *IntegratorService) ListProjectsWithDevices(ctx context.Context, integratorID string) ([]models.ProjectWithDevices, error) {
	projects, err := s.projects.ListByIntegrator(ctx, integratorID)
	if err != nil {
		return nil, err
	}

	result := make([]models.ProjectWithDevices, 0, len(projects))
	for _, p := range projects {
		devices, err := s.devices.ListByProject(ctx, p.ProjectID)
		if err != nil {
			return nil, err
		}

		open := 0
		for _, d := range devices {
			open += d.OpenFaults()
		}

		p.NumberOfDevices = len(devices)
		p.OpenRequests = open

		result = append(result, models.ProjectWithDevices{Project: p, Devices: devices})
	}
	return result, nil
}

// FaultStats aggregates the integrator's entire fleet: totals, a device
// status histogram, a 6-month trailing fault trend (oldest month first,
// current month last) and the ten most common fault types.
func (s *IntegratorService) FaultStats(ctx context.Context, integratorID string) (*models.FaultStats, error) {
	devices, err := s.devices.ListByIntegrator(ctx, integratorID)
	if err != nil {
		return nil, err
	}

	stats := &models.FaultStats{
		TotalDevices:          len(devices),
		DeviceStatusBreakdown: map[string]int{},
		FaultTrends:           make([]models.MonthlyFaults, 0, trendMonths),
		CommonFaults:          []models.FaultTypeCount{},
	}
	for _, status := range models.DeviceStatuses {
		stats.DeviceStatusBreakdown[status] = 0
	}

	faultCounts := map[string]int{}
	var faultOrder []string

	for _, device := range devices {
		stats.DeviceStatusBreakdown[device.Status]++

		for _, fault := range device.FaultHistory {
			stats.TotalFaults++
			if fault.Status == models.FaultResolved {
				stats.ResolvedFaults++
			} else {
				stats.OpenFaults++
			}

			faultType := fault.FaultType
			if faultType == "" {
				faultType = unknownFaultType
			}
			if _, seen := faultCounts[faultType]; !seen {
				faultOrder = append(faultOrder, faultType)
			}
			faultCounts[faultType]++
		}
	}

	// Trailing months, oldest first, current month inclusive.
	now := s.now()
	for i := trendMonths - 1; i >= 0; i-- {
		bucket := now.AddDate(0, -i, 0)
		count := 0
		for _, device := range devices {
			for _, fault := range device.FaultHistory {
				if fault.ReportedDate.Month() == bucket.Month() && fault.ReportedDate.Year() == bucket.Year() {
					count++
				}
			}
		}
		stats.FaultTrends = append(stats.FaultTrends, models.MonthlyFaults{
			Month:  bucket.Format("Jan"),
			Faults: count,
		})
	}

	// Rank fault types by count, ties broken by first-encountered order.
	ranked := make([]models.FaultTypeCount, 0, len(faultOrder))
	for _, ft := range faultOrder {
		ranked = append(ranked, models.FaultTypeCount{FaultType: ft, Count: faultCounts[ft]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topCommonFaults {
		ranked = ranked[:topCommonFaults]
	}
	stats.CommonFaults = ranked

	return stats, nil
}

// CreateProject registers a project under a generated PROJ-<prefix>-<seq> id.
func (s *IntegratorService) CreateProject(ctx context.Context, integratorID string, project *models.Project) (*models.Project, error) {
	project.IntegratorID = integratorID
	project.NumberOfDevices = 0
	project.OpenRequests = 0

	if err := utils.ValidateStruct(project); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	count, err := s.projects.CountByIntegrator(ctx, integratorID)
	if err != nil {
		return nil, err
	}
	project.ProjectID = GenerateSequenceID("PROJ", integratorID, count+1)

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// AddDevices inserts a batch of devices into a project. Duplicate serial
// numbers are skipped, not fatal; the owning project's device count is
// recomputed afterward.
func (s *IntegratorService) AddDevices(ctx context.Context, integratorID, projectID string, devices []models.Device) (int, error) {
	if len(devices) == 0 {
		return 0, fmt.Errorf("%w: expected a non-empty array of devices", models.ErrValidation)
	}

	if _, err := s.projects.FindByID(ctx, integratorID, projectID); err != nil {
		return 0, err
	}

	for i := range devices {
		devices[i].ProjectID = projectID
		devices[i].IntegratorID = integratorID
		if err := utils.ValidateStruct(&devices[i]); err != nil {
			return 0, fmt.Errorf("%w: device %d: %v", models.ErrValidation, i, err)
		}
	}

	inserted, err := s.devices.InsertMany(ctx, devices)
	if err != nil {
		return inserted, err
	}

	total, err := s.devices.CountByProject(ctx, projectID)
	if err != nil {
		return inserted, err
	}
	if err := s.projects.SetDeviceCount(ctx, projectID, int(total)); err != nil {
		return inserted, err
	}

	return inserted, nil
}
