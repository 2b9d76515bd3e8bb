package models

import (
	log "github.com/sirupsen/logrus"
)

// Zone is a pool representing an active game area. As the game reveals
// cards it reconciles transient instance ids with catalog ids.
type Zone struct {
	Pool
	ZoneID int

	logger log.FieldLogger
}

// NewZone builds an empty zone. logger may be nil, in which case the
// standard logger is used.
func NewZone(name string, zoneID int, logger log.FieldLogger) *Zone {
	return &Zone{
		Pool:   *NewPool(name, nil, nil),
		ZoneID: zoneID,
		logger: ensureLogger(logger),
	}
}

// MatchInstanceToCard applies an (instance id, catalog id) observation
// from the game-event stream to this zone's cards.
func (z *Zone) MatchInstanceToCard(instanceID, catalogID int) error {
	return matchInstanceToCard(&z.Pool, z.logger, instanceID, catalogID)
}

// matchInstanceToCard is the reconciliation shared by Zone and Library.
//
// The first card holding instanceID (now or in its history) is
// transformed to catalogID; if it already resolved to a different
// catalog id the event contradicts known state and is rejected. Failing
// an instance-id match, the first card of the claimed catalog id whose
// instance id is still unset adopts instanceID — a recognized but
// anomalous recovery path, logged as a warning.
func matchInstanceToCard(p *Pool, logger log.FieldLogger, instanceID, catalogID int) error {
	for _, c := range p.Cards {
		if c.HasInstanceID(instanceID) {
			if c.CatalogID != UnsetID && c.CatalogID != catalogID {
				return &IdentityConflictError{
					InstanceID: instanceID,
					ClaimedID:  catalogID,
					ResolvedID: c.CatalogID,
				}
			}
			c.TransformTo(catalogID)
			return nil
		}
	}
	for _, c := range p.Cards {
		// only allowed when the instance id never arrived
		if c.CatalogID == catalogID && c.InstanceID == UnsetID {
			logger.Warnf("zone %s: catalog id %d resolved before any instance id, adopting instance %d",
				p.Name, catalogID, instanceID)
			c.InstanceID = instanceID
			return nil
		}
	}
	return nil
}

func ensureLogger(logger log.FieldLogger) log.FieldLogger {
	if logger == nil {
		return log.StandardLogger()
	}
	return logger
}
