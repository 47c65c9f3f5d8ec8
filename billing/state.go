package billing

import (
	"time"

	"facturacion-backend/models"
)

// patientState is the per-status behavior of the lifecycle. Every variant
// implements all three actions; actions not legal in that state return an
// *InvalidTransitionError instead of being silently ignored. Transitions
// mutate the in-memory patient only; persistence happens in the engine's
// unit of work.
type patientState interface {
	addConsumption(p *models.Paciente) error
	discharge(p *models.Paciente, at time.Time) error
	invoice(p *models.Paciente) error
}

// stateFor derives the active variant from the persisted status value. It is
// called on every dispatch, so a status mutation is picked up before any
// further action on the same patient.
func stateFor(estado string) patientState {
	switch estado {
	case models.EstadoInternado:
		return internadoState{}
	case models.EstadoAlta:
		return altaState{}
	case models.EstadoFacturado:
		return facturadoState{}
	default:
		return unknownState{estado: estado}
	}
}

type internadoState struct{}

func (internadoState) addConsumption(*models.Paciente) error { return nil }

func (internadoState) discharge(p *models.Paciente, at time.Time) error {
	p.Estado = models.EstadoAlta
	p.FechaAlta = &at
	return nil
}

func (internadoState) invoice(*models.Paciente) error {
	return &InvalidTransitionError{Action: "facturar a un paciente internado", Estado: models.EstadoInternado}
}

type altaState struct{}

func (altaState) addConsumption(*models.Paciente) error {
	return &InvalidTransitionError{Action: "agregar descargos después del alta", Estado: models.EstadoAlta}
}

func (altaState) discharge(*models.Paciente, time.Time) error {
	return &InvalidTransitionError{Action: "dar de alta a un paciente ya dado de alta", Estado: models.EstadoAlta}
}

func (altaState) invoice(p *models.Paciente) error {
	p.Estado = models.EstadoFacturado
	return nil
}

type facturadoState struct{}

func (facturadoState) addConsumption(*models.Paciente) error {
	return &InvalidTransitionError{Action: "agregar descargos a un paciente facturado", Estado: models.EstadoFacturado}
}

func (facturadoState) discharge(*models.Paciente, time.Time) error {
	return &InvalidTransitionError{Action: "dar de alta a un paciente facturado", Estado: models.EstadoFacturado}
}

func (facturadoState) invoice(*models.Paciente) error {
	return &InvalidTransitionError{Action: "facturar a un paciente ya facturado", Estado: models.EstadoFacturado}
}

// unknownState refuses everything; a status outside the enum means corrupt
// data, not a legal lifecycle position.
type unknownState struct{ estado string }

func (s unknownState) addConsumption(*models.Paciente) error {
	return &InvalidTransitionError{Action: "agregar descargos", Estado: s.estado}
}

func (s unknownState) discharge(*models.Paciente, time.Time) error {
	return &InvalidTransitionError{Action: "dar de alta", Estado: s.estado}
}

func (s unknownState) invoice(*models.Paciente) error {
	return &InvalidTransitionError{Action: "facturar", Estado: s.estado}
}
