package importer

import (
	"testing"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_BasicProject(t *testing.T) {
	gen, err := Convert(validSchema())
	require.NoError(t, err)

	assert.Equal(t, "Warehouse A", gen.Project.Name)
	assert.Equal(t, "2024-06-01", domain.FormatDate(gen.Project.OrderDate))
	assert.Equal(t, domain.ProjectActive, gen.Project.Status)

	require.Len(t, gen.Suppliers, 2)
	assert.Equal(t, gen.Project.ID, gen.Suppliers[0].ProjectID)
	assert.Equal(t, "2024-07-01", gen.Suppliers[0].DeliveryDate)
	require.Len(t, gen.Suppliers[0].LineItems, 1)
	assert.NotEmpty(t, gen.Suppliers[0].LineItems[0].ID)
	assert.Equal(t, domain.DeliveryASAP, gen.Suppliers[1].DeliveryDate)

	require.Len(t, gen.Stages, 1)
	require.Len(t, gen.Tasks, 1)
	require.Len(t, gen.Transports, 1)
}

func TestConvert_RefsResolveToGeneratedIDs(t *testing.T) {
	gen, err := Convert(validSchema())
	require.NoError(t, err)

	s1 := gen.Suppliers[0]
	s2 := gen.Suppliers[1]
	assert.Equal(t, []string{s1.ID}, gen.Stages[0].LinkedSupplierIDs)
	assert.Equal(t, []string{s1.ID, s2.ID}, gen.Transports[0].LinkedSupplierIDs)

	require.Len(t, gen.Dependencies, 1)
	assert.Equal(t, s1.ID, gen.Dependencies[0].FromID)
	assert.Equal(t, gen.Stages[0].ID, gen.Dependencies[0].ToID)
	assert.Equal(t, domain.FinishToStart, gen.Dependencies[0].Kind)
}

func TestConvert_DefaultsCascade(t *testing.T) {
	schema := validSchema()
	hours := 10.0
	crew := 4
	schema.Defaults = &DefaultsImport{
		CalcMethod:     "pallets",
		WorkDayHours:   &hours,
		InstallerCount: &crew,
	}
	stageHours := 6.0
	schema.Stages = append(schema.Stages, StageImport{
		Ref: "st2", Name: "Override", Seq: 2,
		CalcMethod:   "both",
		WorkDayHours: &stageHours,
	})

	gen, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, gen.Stages, 2)

	// First stage inherits the schema defaults.
	assert.Equal(t, domain.CalcPallets, gen.Stages[0].CalcMethod)
	assert.Equal(t, 10.0, gen.Stages[0].WorkDayHours)
	assert.Equal(t, 4, gen.Stages[0].InstallerCount)

	// Second stage's own fields win.
	assert.Equal(t, domain.CalcBoth, gen.Stages[1].CalcMethod)
	assert.Equal(t, 6.0, gen.Stages[1].WorkDayHours)
	assert.Equal(t, 4, gen.Stages[1].InstallerCount)
}

func TestConvert_HardcodedDefaults(t *testing.T) {
	gen, err := Convert(validSchema())
	require.NoError(t, err)

	assert.Equal(t, domain.CalcTime, gen.Stages[0].CalcMethod)
	assert.Equal(t, 8.0, gen.Stages[0].WorkDayHours)
	assert.Equal(t, 2, gen.Stages[0].InstallerCount)
}

func TestConvert_RentalsMapped(t *testing.T) {
	schema := validSchema()
	schema.Stages[0].Rentals = []RentalImport{
		{Resource: "forklift", OffsetDays: 2, Days: 3},
	}

	gen, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalForklift, gen.Stages[0].Rentals[0].Resource)
	assert.Equal(t, 2, gen.Stages[0].Rentals[0].OffsetDays)
	assert.Equal(t, 3, gen.Stages[0].Rentals[0].Days)
	assert.Zero(t, gen.Stages[0].Rentals[1].Days)
}

func TestConvert_OptionalDatesParsed(t *testing.T) {
	schema := validSchema()
	start := "2024-07-01"
	end := "2024-07-05"
	schema.Tasks[0].StartDate = &start
	schema.Tasks[0].EndDate = &end
	protocol := "2024-09-30"
	schema.Project.ProtocolDate = &protocol

	gen, err := Convert(schema)
	require.NoError(t, err)
	require.NotNil(t, gen.Tasks[0].StartDate)
	assert.Equal(t, "2024-07-01", domain.FormatDate(*gen.Tasks[0].StartDate))
	require.NotNil(t, gen.Project.ProtocolDate)
	assert.Equal(t, "2024-09-30", domain.FormatDate(*gen.Project.ProtocolDate))
}
