package schema

// Record is implemented by every table exposed through the CRUD api. Join
// tables are not Records, they are managed by the relation endpoints.
type Record interface {
	TableName() string
	PrimaryKey() int64
	SetPrimaryKey(int64)
	Validate() error
}

type Organizer struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	FullName       string `gorm:"size:255;not null" json:"full_name"`
	Phone          string `gorm:"size:20;not null" json:"phone"`
	Position       string `gorm:"size:100;not null" json:"position"`
	WorkExperience *int   `gorm:"check:organizer_work_experience_check,work_experience >= 0" json:"work_experience"`
}

func (Organizer) TableName() string { return "organizer" }

type Venue struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Address  string `gorm:"size:255;not null" json:"address"`
	Capacity *int   `gorm:"check:venue_capacity_check,capacity > 0" json:"capacity"`
	Type     string `gorm:"size:50;not null" json:"type"`
}

func (Venue) TableName() string { return "venue" }

type Artist struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	FullName       string  `gorm:"size:255;not null" json:"full_name"`
	Genre          string  `gorm:"size:100;not null" json:"genre"`
	OrganizerId    *int64  `gorm:"index" json:"organizer_id"`
	PhoneNumber    *string `gorm:"size:20" json:"phone_number"`
	WorkExperience *int    `gorm:"check:artist_work_experience_check,work_experience >= 0" json:"work_experience"`

	Organizer *Organizer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Artist) TableName() string { return "artist" }

type Client struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	FullName    string `gorm:"size:255;not null" json:"full_name"`
	Phone       string `gorm:"size:20;not null" json:"phone"`
	Email       string `gorm:"size:100;not null" json:"email"`
	Age         *int   `gorm:"check:client_age_check,age >= 0" json:"age"`
	OrganizerId *int64 `gorm:"index" json:"organizer_id"`

	Organizer *Organizer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Client) TableName() string { return "client" }

type Performance struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	Title           string `gorm:"size:255;not null" json:"title"`
	Duration        *int   `gorm:"check:performance_duration_check,duration > 0" json:"duration"`
	Genre           string `gorm:"size:100;not null" json:"genre"`
	NumberOfArtists int    `gorm:"not null" json:"number_of_artists"`
}

func (Performance) TableName() string { return "performance" }

type ConcertProgram struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	Title                string  `gorm:"size:255;not null" json:"title"`
	Date                 string  `gorm:"size:10;not null" json:"date"`
	VenueId              *int64  `gorm:"index" json:"venue_id"`
	Duration             int     `gorm:"not null" json:"duration"`
	Address              *string `gorm:"size:100" json:"address"`
	NumberOfPerformances int     `gorm:"not null" json:"number_of_performances"`
	Time                 *string `gorm:"size:20" json:"time"`

	Venue *Venue `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ConcertProgram) TableName() string { return "concert_program" }

type Ticket struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	TicketNumber     string  `gorm:"size:50;not null;unique" json:"ticket_number"`
	Price            int     `gorm:"not null;check:ticket_price_check,price >= 0" json:"price"`
	ClientId         *int64  `gorm:"index" json:"client_id"`
	ConcertProgramId *int64  `gorm:"index" json:"concert_program_id"`
	Place            *string `gorm:"size:50" json:"place"`
	Address          *string `gorm:"size:100" json:"address"`
	Date             string  `gorm:"size:10;not null" json:"date"`
	Time             *string `gorm:"size:20" json:"time"`

	Client         *Client         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	ConcertProgram *ConcertProgram `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Ticket) TableName() string { return "ticket" }

// Test is a scratch table kept for operator experiments with the raw sql
// endpoint.
type Test struct {
	Id int64 `gorm:"primaryKey" json:"id"`

	A *int    `json:"a"`
	B *string `json:"b"`
}

func (Test) TableName() string { return "test" }

type ArtistPerformance struct {
	ArtistId      int64 `gorm:"primaryKey" json:"artist_id"`
	PerformanceId int64 `gorm:"primaryKey" json:"performance_id"`

	Artist      *Artist      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Performance *Performance `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ArtistPerformance) TableName() string { return "artist_performance" }

type OrganizerConcertProgram struct {
	OrganizerId      int64 `gorm:"primaryKey" json:"organizer_id"`
	ConcertProgramId int64 `gorm:"primaryKey" json:"concert_program_id"`

	Organizer      *Organizer      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ConcertProgram *ConcertProgram `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (OrganizerConcertProgram) TableName() string { return "organizer_concert_program" }

type PerformanceConcertProgram struct {
	PerformanceId    int64 `gorm:"primaryKey" json:"performance_id"`
	ConcertProgramId int64 `gorm:"primaryKey" json:"concert_program_id"`

	Performance    *Performance    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ConcertProgram *ConcertProgram `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PerformanceConcertProgram) TableName() string { return "performance_concert_program" }

// AllModels lists every table in migration order, referenced tables first.
func AllModels() []interface{} {
	return []interface{}{
		&Organizer{}, &Venue{}, &Artist{}, &Client{}, &Performance{},
		&ConcertProgram{}, &Ticket{}, &Test{},
		&ArtistPerformance{}, &OrganizerConcertProgram{}, &PerformanceConcertProgram{},
	}
}
