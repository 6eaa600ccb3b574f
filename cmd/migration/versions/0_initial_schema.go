package versions

import (
	"agency_platform/agency/schema"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

/*
 * The initial schema creates every table with its cascade policy spelled out
 * in the model constraint tags:
 *
 *   artist.organizer_id    -> organizer  ON UPDATE CASCADE  ON DELETE CASCADE
 *   client.organizer_id    -> organizer  ON UPDATE CASCADE  ON DELETE CASCADE
 *   concert_program.venue_id -> venue    ON UPDATE CASCADE  ON DELETE CASCADE
 *   ticket.client_id       -> client     ON UPDATE CASCADE  ON DELETE SET NULL
 *   ticket.concert_program_id -> concert_program  CASCADE / CASCADE
 *   all three join tables  -> both sides CASCADE / CASCADE
 */
func initialSchema() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "0_initial_schema",
		Migrate: func(txn *gorm.DB) error {
			return txn.Migrator().AutoMigrate(schema.AllModels()...)
		},
		Rollback: func(txn *gorm.DB) error {
			models := schema.AllModels()
			// Drop in reverse order so dependents go before their targets.
			for i := len(models) - 1; i >= 0; i-- {
				if err := txn.Migrator().DropTable(models[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		initialSchema(),
	}
}
