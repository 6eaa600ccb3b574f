package schema

import (
	"errors"
	"fmt"
	"time"
)

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("field '%v' is required", name)
		}
	}
	return nil
}

func checkDate(name, value string) error {
	if value == "" {
		return fmt.Errorf("field '%v' is required", name)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("field '%v' must be a date in YYYY-MM-DD format", name)
	}
	return nil
}

func (o *Organizer) PrimaryKey() int64      { return o.Id }
func (o *Organizer) SetPrimaryKey(id int64) { o.Id = id }

func (o *Organizer) Validate() error {
	if err := requireFields(map[string]string{"full_name": o.FullName, "phone": o.Phone, "position": o.Position}); err != nil {
		return err
	}
	if o.WorkExperience != nil && *o.WorkExperience < 0 {
		return errors.New("work_experience must be >= 0")
	}
	return nil
}

func (v *Venue) PrimaryKey() int64      { return v.Id }
func (v *Venue) SetPrimaryKey(id int64) { v.Id = id }

func (v *Venue) Validate() error {
	if err := requireFields(map[string]string{"name": v.Name, "address": v.Address, "type": v.Type}); err != nil {
		return err
	}
	if v.Capacity != nil && *v.Capacity <= 0 {
		return errors.New("capacity must be > 0")
	}
	return nil
}

func (a *Artist) PrimaryKey() int64      { return a.Id }
func (a *Artist) SetPrimaryKey(id int64) { a.Id = id }

func (a *Artist) Validate() error {
	if err := requireFields(map[string]string{"full_name": a.FullName, "genre": a.Genre}); err != nil {
		return err
	}
	if a.WorkExperience != nil && *a.WorkExperience < 0 {
		return errors.New("work_experience must be >= 0")
	}
	return nil
}

func (c *Client) PrimaryKey() int64      { return c.Id }
func (c *Client) SetPrimaryKey(id int64) { c.Id = id }

func (c *Client) Validate() error {
	if err := requireFields(map[string]string{"full_name": c.FullName, "phone": c.Phone, "email": c.Email}); err != nil {
		return err
	}
	if c.Age != nil && *c.Age < 0 {
		return errors.New("age must be >= 0")
	}
	return nil
}

func (p *Performance) PrimaryKey() int64      { return p.Id }
func (p *Performance) SetPrimaryKey(id int64) { p.Id = id }

func (p *Performance) Validate() error {
	if err := requireFields(map[string]string{"title": p.Title, "genre": p.Genre}); err != nil {
		return err
	}
	if p.Duration != nil && *p.Duration <= 0 {
		return errors.New("duration must be > 0")
	}
	if p.NumberOfArtists <= 0 {
		return errors.New("number_of_artists must be > 0")
	}
	return nil
}

func (p *ConcertProgram) PrimaryKey() int64      { return p.Id }
func (p *ConcertProgram) SetPrimaryKey(id int64) { p.Id = id }

func (p *ConcertProgram) Validate() error {
	if err := requireFields(map[string]string{"title": p.Title}); err != nil {
		return err
	}
	if err := checkDate("date", p.Date); err != nil {
		return err
	}
	if p.Duration <= 0 {
		return errors.New("duration must be > 0")
	}
	if p.NumberOfPerformances <= 0 {
		return errors.New("number_of_performances must be > 0")
	}
	return nil
}

func (t *Ticket) PrimaryKey() int64      { return t.Id }
func (t *Ticket) SetPrimaryKey(id int64) { t.Id = id }

func (t *Ticket) Validate() error {
	if err := requireFields(map[string]string{"ticket_number": t.TicketNumber}); err != nil {
		return err
	}
	if t.Price < 0 {
		return errors.New("price must be >= 0")
	}
	return checkDate("date", t.Date)
}

func (t *Test) PrimaryKey() int64      { return t.Id }
func (t *Test) SetPrimaryKey(id int64) { t.Id = id }

func (t *Test) Validate() error { return nil }
