package dashboard

import (
	"strings"
	"testing"

	"smartdir/internal/directory"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedPartners(t *testing.T, records ...directory.Partner) (*partnersPanel, *fakeStore[directory.Partner]) {
	t.Helper()
	store := newFakeStore(records...)
	p := newPartnersPanel(testEnv(), store)
	drive(t, p.Update, p.Init())
	require.Equal(t, 1, store.lists)
	return p, store
}

func TestPartnersPanel_ShowsLoadingUntilFirstReply(t *testing.T) {
	p := newPartnersPanel(testEnv(), newFakeStore[directory.Partner]())
	assert.Contains(t, p.View(), "CARGANDO...")
}

func TestPartnersPanel_RendersRows(t *testing.T) {
	p, _ := loadedPartners(t,
		directory.Partner{ID: "1", Name: "Ana", Phone: "5555-0001", Active: true},
		directory.Partner{ID: "2", Name: "Beto", Active: false},
	)

	view := p.View()
	assert.Contains(t, view, "NOMBRE")
	assert.Contains(t, view, "Ana")
	assert.Contains(t, view, "ACTIVO")
	assert.Contains(t, view, "INACTIVO")
	assert.NotContains(t, view, "SIN REGISTROS")
	assert.NotContains(t, view, "CARGANDO...")
}

func TestPartnersPanel_EmptyPlaceholder(t *testing.T) {
	p, _ := loadedPartners(t)
	assert.Contains(t, p.View(), "SIN REGISTROS")
}

func TestPartnersPanel_DeleteCancelledSendsNothing(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})

	press(t, p, "d")
	assert.True(t, p.Capturing())
	assert.Contains(t, p.View(), "¿Eliminar socio?")

	press(t, p, "n")
	assert.False(t, p.Capturing())
	assert.Empty(t, store.deleted)
	assert.Equal(t, 1, store.lists, "cancel must not refetch")
}

func TestPartnersPanel_DeleteConfirmedThenReloads(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})

	press(t, p, "d", "y")

	assert.Equal(t, []string{"1"}, store.deleted)
	assert.Equal(t, 2, store.lists)
	assert.Contains(t, p.View(), "SIN REGISTROS")
}

func TestPartnersPanel_DeleteIgnoresKeysWhileConfirming(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})

	press(t, p, "d", "r", "x", "esc")

	assert.Empty(t, store.deleted)
	assert.Equal(t, 1, store.lists)
}

func TestPartnersPanel_CreateSendsOnePost(t *testing.T) {
	p, store := loadedPartners(t)

	press(t, p, "n")
	assert.Contains(t, p.View(), "NUEVO SOCIO")
	assert.True(t, p.Capturing())

	press(t, p, "Clínica Sur", "tab", "2222-3333", "ctrl+s")

	require.Len(t, store.created, 1)
	want := directory.Partner{Name: "Clínica Sur", Phone: "2222-3333", Active: true}
	if diff := cmp.Diff(want, store.created[0]); diff != "" {
		t.Errorf("created partner mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, store.updated)
	assert.False(t, p.form.open, "modal closes on submit")
	assert.Equal(t, 2, store.lists)
	assert.Contains(t, p.View(), "Clínica Sur")
}

func TestPartnersPanel_EditSendsOnePutToID(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "7", Name: "Ana", Specialty: "Pediatría", Active: true})

	press(t, p, "e")
	assert.Contains(t, p.View(), "EDITAR SOCIO")

	// Walk to the toggle row, flip it, submit with enter.
	press(t, p, "down", "down", "down", "down", " ", "enter")

	require.Len(t, store.updated, 1)
	got, ok := store.updated["7"]
	require.True(t, ok, "PUT must target the edited id")
	want := directory.Partner{ID: "7", Name: "Ana", Specialty: "Pediatría", Active: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("updated partner mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, store.created)
	assert.Equal(t, 2, store.lists)
}

func TestPartnersPanel_FormEscSendsNothing(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})

	press(t, p, "e", "Beatriz", "esc")

	assert.False(t, p.form.open)
	assert.Zero(t, store.requests())
	assert.Equal(t, 1, store.lists)
	assert.Contains(t, p.View(), "Ana")
}

func TestPartnersPanel_FormSwallowsShortcuts(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})

	press(t, p, "n", "d", "r")

	assert.True(t, p.form.open)
	assert.Empty(t, store.deleted)
	assert.Equal(t, 1, store.lists)
	assert.Equal(t, "dr", p.form.value().Name)
}

func TestPartnersPanel_FailedMutationStillReloads(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})
	store.mutErr = errBackend

	press(t, p, "d", "y")

	assert.Equal(t, []string{"1"}, store.deleted)
	assert.Equal(t, 2, store.lists)
	assert.True(t, strings.HasPrefix(p.Status(), "Error: "), p.Status())
	assert.Contains(t, p.View(), "Ana")
}

func TestPartnersPanel_FailedLoadKeepsRows(t *testing.T) {
	p, store := loadedPartners(t, directory.Partner{ID: "1", Name: "Ana", Active: true})
	store.listErr = errBackend

	press(t, p, "r")

	assert.Equal(t, 2, store.lists)
	assert.NotContains(t, p.View(), "CARGANDO...")
	assert.Contains(t, p.View(), "Ana")
	assert.Contains(t, p.Status(), errBackend.Error())
}

func TestPartnersPanel_StaleGenerationIgnored(t *testing.T) {
	p, _ := loadedPartners(t)

	p.Update(loadedMsg[directory.Partner]{
		gen:     p.gen + 1,
		seq:     1,
		records: []directory.Partner{{ID: "9", Name: "Intruso"}},
	})

	assert.NotContains(t, p.View(), "Intruso")
}
