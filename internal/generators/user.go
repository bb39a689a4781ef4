package generators

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"github.com/mmrzaf/synthgen/internal/table"
)

// User generates account and profile records where every field is drawn
// independently.
type User struct {
	src *randutil.Source
}

func NewUser(src *randutil.Source) *User {
	return &User{src: src}
}

type ProfileParams struct {
	Rows          int
	IncludeBio    bool
	IncludeSocial bool
}

// Profiles produces user profile rows. Account creation dates are drawn
// unsorted from a three-year trailing window; dates of birth land between
// 18 and 80 years of age.
func (g *User) Profiles(p ProfileParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows
	now := time.Now()

	usernames := make([]string, n)
	emails := make([]string, n)
	firstNames := make([]string, n)
	lastNames := make([]string, n)
	phones := make([]string, n)
	cities := make([]string, n)
	countries := make([]string, n)
	dobs := make([]interface{}, n)
	for i := 0; i < n; i++ {
		usernames[i] = faker.Username()
		emails[i] = faker.Email()
		firstNames[i] = faker.FirstName()
		lastNames[i] = faker.LastName()
		phones[i] = faker.Phonenumber()
		cities[i] = g.src.Pick(cityPool)
		countries[i] = g.src.Pick(countryPool)
		dobs[i] = g.dateOfBirth(now, 18, 80)
	}

	b := table.NewBuilder(n).
		Add("user_id", randutil.IDs(n, "USER_", 1)).
		AddStrings("username", usernames).
		AddStrings("email", emails).
		AddStrings("first_name", firstNames).
		AddStrings("last_name", lastNames).
		Add("date_of_birth", dobs).
		AddStrings("phone", phones).
		AddStrings("city", cities).
		AddStrings("country", countries).
		Add("account_created", boxTimes(g.src.Timestamps(n, now.AddDate(0, 0, -1095), now, false)))

	if p.IncludeBio {
		bios := make([]string, n)
		for i := range bios {
			bios[i] = faker.Sentence()
		}
		b.AddStrings("bio", bios)
	}
	if p.IncludeSocial {
		websites := make([]string, n)
		handles := make([]string, n)
		for i := 0; i < n; i++ {
			websites[i] = faker.URL()
			handles[i] = "@" + faker.Username()
		}
		b.AddStrings("website", websites).
			AddStrings("twitter_handle", handles)
	}

	return b.Build()
}

func (g *User) dateOfBirth(now time.Time, minAge, maxAge int) time.Time {
	oldest := now.AddDate(-maxAge, 0, 0)
	youngest := now.AddDate(-minAge, 0, 0)
	days := int(youngest.Sub(oldest).Hours() / 24)
	d := oldest.AddDate(0, 0, g.src.Intn(days+1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

type AccountParams struct {
	Rows                int
	IncludeSubscription bool
}

// Accounts produces account/subscription rows.
func (g *User) Accounts(p AccountParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows
	now := time.Now()

	accountTypes, err := g.src.Categorical(n,
		[]string{"Free", "Basic", "Premium", "Enterprise"},
		[]float64{0.5, 0.25, 0.15, 0.1})
	if err != nil {
		return nil, err
	}
	statuses, err := g.src.Categorical(n,
		[]string{"Active", "Inactive", "Suspended", "Pending"},
		[]float64{0.8, 0.1, 0.05, 0.05})
	if err != nil {
		return nil, err
	}

	b := table.NewBuilder(n).
		Add("account_id", randutil.IDs(n, "ACC_", 1)).
		Add("user_id", randutil.IDs(n, "USER_", 1)).
		AddStrings("account_type", accountTypes).
		AddStrings("status", statuses).
		Add("created_date", boxTimes(g.src.Timestamps(n, now.AddDate(0, 0, -730), now, false)))

	if p.IncludeSubscription {
		starts := g.src.Timestamps(n, now.AddDate(0, 0, -365), now, false)
		ends := make([]interface{}, n)
		terms := []int{30, 90, 365}
		for i, start := range starts {
			ends[i] = start.AddDate(0, 0, terms[g.src.Intn(len(terms))])
		}
		fees, err := g.src.Categorical(n,
			[]string{"0", "9.99", "19.99", "99.99"},
			[]float64{0.5, 0.25, 0.15, 0.1})
		if err != nil {
			return nil, err
		}
		b.Add("subscription_start", boxTimes(starts)).
			Add("subscription_end", ends).
			AddStrings("monthly_fee", fees)
	}

	return b.Build()
}

type ActivityParams struct {
	Rows      int
	NUsers    int       // zero: max(1, Rows/5)
	StartDate time.Time // zero: 30 days before now
	EndDate   time.Time // zero: now
}

// LoginActivity produces login event rows sorted by timestamp. The user
// reference follows the same zero-padded association convention as
// business transactions.
func (g *User) LoginActivity(p ActivityParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows
	if p.NUsers == 0 {
		p.NUsers = n / 5
		if p.NUsers < 1 {
			p.NUsers = 1
		}
	}
	if p.NUsers < 0 {
		return nil, fmt.Errorf("%w: n_users %d", domain.ErrInvalidParameter, p.NUsers)
	}
	now := time.Now()
	if p.EndDate.IsZero() {
		p.EndDate = now
	}
	if p.StartDate.IsZero() {
		p.StartDate = now.AddDate(0, 0, -30)
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, fmt.Errorf("%w: date window [%s, %s]", domain.ErrInvalidParameter,
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}

	width := len(strconv.Itoa(p.NUsers))
	userIDs := make([]string, n)
	ips := make([]string, n)
	for i := 0; i < n; i++ {
		userIDs[i] = fmt.Sprintf("USER_%0*d", width, 1+g.src.Intn(p.NUsers))
		ips[i] = faker.IPv4()
	}

	devices, err := g.src.Categorical(n,
		[]string{"Desktop", "Mobile", "Tablet"}, []float64{0.5, 0.4, 0.1})
	if err != nil {
		return nil, err
	}
	browsers, err := g.src.Categorical(n,
		[]string{"Chrome", "Firefox", "Safari", "Edge", "Opera"},
		[]float64{0.5, 0.2, 0.15, 0.1, 0.05})
	if err != nil {
		return nil, err
	}
	oses, err := g.src.Categorical(n,
		[]string{"Windows", "macOS", "Linux", "iOS", "Android"},
		[]float64{0.4, 0.25, 0.05, 0.15, 0.15})
	if err != nil {
		return nil, err
	}
	successes, err := g.src.Categorical(n,
		[]string{"True", "False"}, []float64{0.95, 0.05})
	if err != nil {
		return nil, err
	}

	return table.NewBuilder(n).
		Add("log_id", randutil.IDs(n, "LOG_", 1)).
		AddStrings("user_id", userIDs).
		Add("login_timestamp", boxTimes(g.src.Timestamps(n, p.StartDate, p.EndDate, true))).
		AddStrings("ip_address", ips).
		AddStrings("device", devices).
		AddStrings("browser", browsers).
		AddStrings("os", oses).
		AddStrings("login_success", successes).
		Build()
}

type PreferenceParams struct {
	Rows int
}

// Preferences produces per-user settings rows.
func (g *User) Preferences(p PreferenceParams) (*domain.Table, error) {
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	n := p.Rows

	languages, err := g.src.Categorical(n,
		[]string{"en", "es", "fr", "de", "ja", "zh"},
		[]float64{0.5, 0.15, 0.1, 0.1, 0.08, 0.07})
	if err != nil {
		return nil, err
	}
	timezones, err := g.src.Categorical(n,
		[]string{"UTC", "EST", "PST", "CST", "GMT", "JST"},
		[]float64{0.15, 0.25, 0.25, 0.15, 0.1, 0.1})
	if err != nil {
		return nil, err
	}
	themes, err := g.src.Categorical(n,
		[]string{"light", "dark", "auto"}, []float64{0.4, 0.4, 0.2})
	if err != nil {
		return nil, err
	}
	emailNotif, err := g.src.Categorical(n,
		[]string{"True", "False"}, []float64{0.7, 0.3})
	if err != nil {
		return nil, err
	}
	pushNotif, err := g.src.Categorical(n,
		[]string{"True", "False"}, []float64{0.6, 0.4})
	if err != nil {
		return nil, err
	}
	privacy, err := g.src.Categorical(n,
		[]string{"public", "friends", "private"}, []float64{0.3, 0.4, 0.3})
	if err != nil {
		return nil, err
	}

	return table.NewBuilder(n).
		Add("user_id", randutil.IDs(n, "USER_", 1)).
		AddStrings("language", languages).
		AddStrings("timezone", timezones).
		AddStrings("theme", themes).
		AddStrings("email_notifications", emailNotif).
		AddStrings("push_notifications", pushNotif).
		AddStrings("privacy_mode", privacy).
		Build()
}
