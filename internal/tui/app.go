package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/catalog"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/format"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/service"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/session"
)

// App ties together the dashboard sections. All collaborators are passed in
// at construction; nothing lives in package state.
type App struct {
	ctx      context.Context
	catalog  *catalog.Catalog
	services Services
	sessions *session.Store
	user     *session.User // nil when browsing as a guest

	state    appState
	bookings []booking.Booking
	stale    bool
	loadSeq  uint64 // bumps on every reload request; stale responses are dropped

	bookingCursor int
	vehicleCursor int
	statusCursor  int
	monthCursor   int // -1 means no month filter, else offset back from now

	searchQuery string
	searching   bool

	modal          modalState
	inputBuffer    string
	edits          service.ProfileEdits
	profileCursor  int
	detailsBooking *booking.Booking
	cancelTarget   string

	status string
	now    func() time.Time
}

type Services struct {
	Dashboard *service.Dashboard
	Profile   *service.Profile
}

type appState string

const (
	viewOverview appState = "overview"
	viewBookings appState = "bookings"
	viewCatalog  appState = "catalog"
	viewProfile  appState = "profile"
)

type modalState string

const (
	modalNone           modalState = ""
	modalConfirmCancel  modalState = "confirmCancel"
	modalConfirmLogout  modalState = "confirmLogout"
	modalBookingDetails modalState = "bookingDetails"
	modalEditField      modalState = "editField"
)

// statusFilters is the cycle order for the bookings status filter; the empty
// entry means no reduction.
var statusFilters = []booking.Status{
	"",
	booking.StatusPending,
	booking.StatusConfirmed,
	booking.StatusOngoing,
	booking.StatusCompleted,
	booking.StatusCancelled,
}

func New(ctx context.Context, cat *catalog.Catalog, services Services, sessions *session.Store, user *session.User) *App {
	a := &App{
		ctx:         ctx,
		catalog:     cat,
		services:    services,
		sessions:    sessions,
		user:        user,
		state:       viewCatalog,
		monthCursor: -1,
		now:         time.Now,
	}
	if user != nil {
		a.state = viewOverview
		a.edits = editsFromUser(*user)
	}
	return a
}

func (a *App) signedIn() bool { return a.user != nil }

func (a *App) Init() tea.Cmd {
	if !a.signedIn() {
		return nil
	}
	return a.loadBookings()
}

// loadBookings tags the request with a fresh sequence number. A response
// carrying an older number lost the race and is discarded in Update.
func (a *App) loadBookings() tea.Cmd {
	if a.user == nil || a.services.Dashboard == nil {
		return nil
	}
	a.loadSeq++
	seq := a.loadSeq
	userID := a.user.ID
	return func() tea.Msg {
		res, err := a.services.Dashboard.Load(a.ctx, userID)
		if err != nil {
			return errMsg{err}
		}
		return bookingsMsg{seq: seq, result: res}
	}
}

func (a *App) cancelBooking(id string) tea.Cmd {
	if a.user == nil || a.services.Dashboard == nil {
		return nil
	}
	a.loadSeq++
	seq := a.loadSeq
	userID := a.user.ID
	return func() tea.Msg {
		res, err := a.services.Dashboard.CancelBooking(a.ctx, userID, id)
		if err != nil {
			return errMsg{err}
		}
		return bookingsMsg{seq: seq, result: res, note: "Réservation annulée"}
	}
}

func (a *App) saveProfile() tea.Cmd {
	if a.user == nil || a.services.Profile == nil {
		return nil
	}
	current := *a.user
	edits := a.edits
	return func() tea.Msg {
		updated, err := a.services.Profile.Update(a.ctx, current, edits)
		if err != nil {
			if errors.Is(err, service.ErrPasswordMismatch) {
				return statusMsg("Les mots de passe ne correspondent pas")
			}
			return errMsg{err}
		}
		return profileSavedMsg(updated)
	}
}

func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		if a.sessions != nil {
			if err := a.sessions.Clear(); err != nil {
				return errMsg{err}
			}
		}
		return loggedOutMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	case bookingsMsg:
		if m.seq != a.loadSeq {
			// a newer reload is already in flight or landed
			return a, nil
		}
		a.bookings = m.result.Bookings
		a.stale = m.result.Stale
		if a.bookingCursor >= len(a.visibleBookings()) {
			a.bookingCursor = 0
		}
		a.status = m.note
		if a.stale && a.status == "" {
			a.status = "Hors ligne: données locales affichées"
		}
	case profileSavedMsg:
		u := session.User(m)
		a.user = &u
		a.edits = editsFromUser(u)
		a.status = "Profil mis à jour"
	case loggedOutMsg:
		a.user = nil
		a.bookings = nil
		a.stale = false
		a.state = viewCatalog
		a.status = "Déconnecté"
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "Erreur: " + m.Error()
	}
	return a, nil
}

// showSection switches the active section. The dashboard sections require a
// session; a guest is prompted to sign in and stays where they were.
func (a *App) showSection(s appState) {
	if s != viewCatalog && !a.signedIn() {
		a.status = "Connectez-vous pour accéder au tableau de bord"
		return
	}
	a.state = s
	a.status = ""
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "o":
		a.showSection(viewOverview)
	case "b":
		a.showSection(viewBookings)
	case "c":
		a.showSection(viewCatalog)
	case "p":
		a.showSection(viewProfile)
	case "r":
		if a.signedIn() {
			a.status = "Chargement..."
			return a, a.loadBookings()
		}
	case "l":
		if a.signedIn() {
			a.modal = modalConfirmLogout
		}
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "/":
		if a.state == viewCatalog {
			a.searching = true
			a.searchQuery = ""
		}
	case "f":
		if a.state == viewCatalog {
			a.cycleCategoryFilter()
		}
	case "s":
		if a.state == viewBookings {
			a.cycleStatusFilter()
		}
		if a.state == viewProfile {
			a.status = "Enregistrement..."
			return a, a.saveProfile()
		}
	case "m":
		if a.state == viewBookings {
			a.cycleMonthFilter()
		}
	case "a":
		if a.state == viewBookings {
			visible := a.visibleBookings()
			if a.bookingCursor < len(visible) && visible[a.bookingCursor].Status.Cancellable() {
				a.cancelTarget = visible[a.bookingCursor].ID
				a.modal = modalConfirmCancel
			}
		}
	case "enter":
		switch a.state {
		case viewBookings:
			visible := a.visibleBookings()
			if a.bookingCursor < len(visible) {
				b := visible[a.bookingCursor]
				a.detailsBooking = &b
				a.modal = modalBookingDetails
			}
		case viewCatalog:
			return a, a.selectVehicle()
		case viewProfile:
			a.openFieldEditor()
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.state {
	case viewBookings:
		n := len(a.visibleBookings())
		if next := a.bookingCursor + delta; next >= 0 && next < n {
			a.bookingCursor = next
		}
	case viewCatalog:
		n := len(a.visibleVehicles())
		if next := a.vehicleCursor + delta; next >= 0 && next < n {
			a.vehicleCursor = next
		}
	case viewProfile:
		if next := a.profileCursor + delta; next >= 0 && next < len(profileFields) {
			a.profileCursor = next
		}
	}
}

func (a *App) cycleCategoryFilter() {
	options := append([]string{catalog.FilterAll}, categoryValues()...)
	current := 0
	for i, o := range options {
		if o == a.catalog.ActiveFilter() {
			current = i
		}
	}
	next := options[(current+1)%len(options)]
	a.catalog.FilterByCategory(next)
	a.vehicleCursor = 0
	if next == catalog.FilterAll {
		a.status = "Filtre: tous les véhicules"
	} else {
		a.status = "Filtre: " + catalog.Category(next).Label()
	}
}

func (a *App) cycleStatusFilter() {
	current := 0
	for i, s := range statusFilters {
		if s == a.statusFilter() {
			current = i
		}
	}
	a.statusCursor = (current + 1) % len(statusFilters)
	a.bookingCursor = 0
	if a.statusFilter() == "" {
		a.status = "Statut: tous"
	} else {
		a.status = "Statut: " + a.statusFilter().Label()
	}
}

func (a *App) statusFilter() booking.Status { return statusFilters[a.statusCursor] }

func (a *App) cycleMonthFilter() {
	a.monthCursor++
	if a.monthCursor >= 6 {
		a.monthCursor = -1
	}
	a.bookingCursor = 0
	if a.monthCursor < 0 {
		a.status = "Mois: tous"
	} else {
		m := a.filterMonth()
		a.status = "Mois: " + format.MonthYear(m)
	}
}

func (a *App) filterMonth() time.Time {
	if a.monthCursor < 0 {
		return time.Time{}
	}
	now := a.now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -a.monthCursor, 0)
}

// visibleBookings applies the active filters and the fixed sort. It never
// mutates the cached set.
func (a *App) visibleBookings() []booking.Booking {
	f := booking.Filter{Status: a.statusFilter(), Month: a.filterMonth()}
	return booking.SortByDateDesc(f.Apply(a.bookings))
}

func (a *App) visibleVehicles() []catalog.Vehicle {
	if a.searchQuery != "" {
		return a.catalog.Search(a.searchQuery)
	}
	return a.catalog.Visible()
}

func (a *App) selectVehicle() tea.Cmd {
	visible := a.visibleVehicles()
	if a.vehicleCursor >= len(visible) {
		return nil
	}
	v, outcome := a.catalog.Select(visible[a.vehicleCursor].ID, a.signedIn())
	switch outcome {
	case catalog.OutcomeUnavailable:
		a.status = "Ce véhicule n'est pas disponible"
	case catalog.OutcomeSignInRequired:
		a.status = "Connectez-vous pour réserver"
	case catalog.OutcomeProceed:
		a.status = fmt.Sprintf("Réservation de %s %s: poursuivez sur la page de réservation", v.Brand, v.Model)
	}
	return nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.searchQuery = ""
		a.vehicleCursor = 0
	case tea.KeyEnter:
		a.searching = false
		a.vehicleCursor = 0
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.searchQuery) > 0 {
			a.searchQuery = a.searchQuery[:len(a.searchQuery)-1]
		}
	case tea.KeySpace:
		a.searchQuery += " "
	case tea.KeyRunes:
		a.searchQuery += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmCancel:
		switch m.String() {
		case "y", "Y":
			id := a.cancelTarget
			a.modal = modalNone
			a.cancelTarget = ""
			a.status = "Annulation..."
			return a, a.cancelBooking(id)
		case "n", "N", "esc":
			a.modal = modalNone
			a.cancelTarget = ""
		}
	case modalConfirmLogout:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.logout()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalBookingDetails:
		switch m.String() {
		case "esc", "enter", "q":
			a.modal = modalNone
			a.detailsBooking = nil
		}
	case modalEditField:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.inputBuffer = ""
		case tea.KeyEnter:
			a.setProfileField(a.profileCursor, a.inputBuffer)
			a.modal = modalNone
			a.inputBuffer = ""
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.inputBuffer) > 0 {
				a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
			}
		case tea.KeySpace:
			a.inputBuffer += " "
		case tea.KeyRunes:
			a.inputBuffer += string(m.Runes)
		}
	}
	return a, nil
}

// profile form

var profileFields = []string{
	"Prénom", "Nom", "Email", "Téléphone", "Date de naissance", "Adresse",
	"Nouveau mot de passe", "Confirmation du mot de passe",
}

func editsFromUser(u session.User) service.ProfileEdits {
	return service.ProfileEdits{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		BirthDate: u.BirthDate,
		Address:   u.Address,
	}
}

func (a *App) profileField(i int) string {
	switch i {
	case 0:
		return a.edits.FirstName
	case 1:
		return a.edits.LastName
	case 2:
		return a.edits.Email
	case 3:
		return a.edits.Phone
	case 4:
		return a.edits.BirthDate
	case 5:
		return a.edits.Address
	case 6:
		return a.edits.NewPassword
	case 7:
		return a.edits.ConfirmNewPassword
	}
	return ""
}

func (a *App) setProfileField(i int, value string) {
	value = strings.TrimSpace(value)
	switch i {
	case 0:
		a.edits.FirstName = value
	case 1:
		a.edits.LastName = value
	case 2:
		a.edits.Email = value
	case 3:
		a.edits.Phone = value
	case 4:
		a.edits.BirthDate = value
	case 5:
		a.edits.Address = value
	case 6:
		a.edits.NewPassword = value
	case 7:
		a.edits.ConfirmNewPassword = value
	}
}

func (a *App) openFieldEditor() {
	a.modal = modalEditField
	a.inputBuffer = a.profileField(a.profileCursor)
}

// messages

type bookingsMsg struct {
	seq    uint64
	result service.LoadResult
	note   string
}

type profileSavedMsg session.User

type loggedOutMsg struct{}

type statusMsg string

type errMsg struct{ error }

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	staleStyle = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewBookings:
		body = a.renderBookings()
	case viewCatalog:
		body = a.renderCatalog()
	case viewProfile:
		body = a.renderProfile()
	default:
		body = a.renderOverview()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderOverview() string {
	name := "invité"
	if a.user != nil {
		name = a.user.FullName()
	}
	title := titleStyle.Render("BY LocationAuto · Bienvenue " + name)
	stats := booking.ComputeStats(a.bookings)
	out := title + "\n"
	out += fmt.Sprintf("Réservations: %d  Actives: %d  En attente: %d  Total dépensé: %s\n",
		stats.Total, stats.Active, stats.Pending, format.FCFA(stats.TotalSpent))
	if a.stale {
		out += staleStyle.Render("Hors ligne: dernières données connues") + "\n"
	}
	out += "\n" + MonthlyActivityChart(booking.CountByMonth(a.bookings, a.now(), 6)).Render(60, 8) + "\n"
	recent := booking.Recent(a.bookings, 5)
	out += "\nRéservations récentes:\n"
	if len(recent) == 0 {
		out += "  (aucune réservation)\n"
	}
	for _, b := range recent {
		out += RenderBookingCard(b, false) + "\n"
	}
	out += "\n[o] Accueil  [b] Réservations  [c] Catalogue  [p] Profil  [r] Recharger  [l] Déconnexion  [q] Quitter"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderBookings() string {
	title := titleStyle.Render("Mes réservations")
	out := title + "\n"
	statusLabel := "tous"
	if a.statusFilter() != "" {
		statusLabel = a.statusFilter().Label()
	}
	monthLabel := "tous"
	if a.monthCursor >= 0 {
		monthLabel = format.MonthYear(a.filterMonth())
	}
	out += fmt.Sprintf("Statut: %s  Mois: %s\n\n", statusLabel, monthLabel)
	visible := a.visibleBookings()
	if len(visible) == 0 {
		out += "  (aucune réservation pour ces filtres)\n"
	}
	for i, b := range visible {
		marker := " "
		if i == a.bookingCursor {
			marker = "▶"
		}
		card := RenderBookingCard(b, i == a.bookingCursor)
		out += marker + " " + strings.ReplaceAll(card, "\n", "\n  ") + "\n"
	}
	out += "\n[s] Filtrer par statut  [m] Filtrer par mois  [a] Annuler  [enter] Détails  [o] Accueil  [q] Quitter"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderCatalog() string {
	title := titleStyle.Render("Catalogue des véhicules")
	out := title + "\n"
	filter := "tous"
	if a.catalog.ActiveFilter() != catalog.FilterAll {
		filter = catalog.Category(a.catalog.ActiveFilter()).Label()
	}
	out += "Catégorie: " + filter
	if a.searching {
		out += "  Recherche: " + a.searchQuery + "▌"
	} else if a.searchQuery != "" {
		out += "  Recherche: " + a.searchQuery
	}
	out += "\n\n"
	visible := a.visibleVehicles()
	if len(visible) == 0 {
		out += "  (aucun véhicule ne correspond)\n"
	}
	for i, v := range visible {
		marker := " "
		if i == a.vehicleCursor {
			marker = "▶"
		}
		out += marker + " " + strings.ReplaceAll(RenderVehicleCard(v), "\n", "\n  ") + "\n"
	}
	out += "\n" + FleetChart(a.catalog.CountByCategory()).Render(50, 6)
	out += "\n\n[f] Filtrer  [/] Rechercher  [enter] Réserver  [o] Accueil  [q] Quitter"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderProfile() string {
	title := titleStyle.Render("Mon profil")
	out := title + "\n"
	if a.user != nil && a.user.RegistrationDate != "" {
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, a.user.RegistrationDate); err == nil {
				out += "Membre depuis " + format.MonthYear(t) + "\n"
				break
			}
		}
	}
	out += "\n"
	for i, label := range profileFields {
		marker := " "
		if i == a.profileCursor {
			marker = "▶"
		}
		value := a.profileField(i)
		if i >= 6 && value != "" {
			value = strings.Repeat("*", len(value))
		}
		out += fmt.Sprintf("%s %-28s %s\n", marker, label, value)
	}
	out += "\n[enter] Modifier le champ  [s] Enregistrer  [o] Accueil  [q] Quitter"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmCancel:
		return titleStyle.Render("Annuler cette réservation ?") + "\nLe statut passera à Annulée.\n[y] Oui  [n] Non"
	case modalConfirmLogout:
		return titleStyle.Render("Se déconnecter ?") + "\n[y] Oui  [n] Non"
	case modalBookingDetails:
		if a.detailsBooking == nil {
			return ""
		}
		return titleStyle.Render("Détails") + "\n" + RenderBookingDetails(*a.detailsBooking) + "\n[esc] Fermer"
	case modalEditField:
		label := profileFields[a.profileCursor]
		return titleStyle.Render(label) + fmt.Sprintf("\n%s\n[enter] Valider  [esc] Annuler", a.inputBuffer)
	default:
		return ""
	}
}

func categoryValues() []string {
	cats := catalog.Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}
