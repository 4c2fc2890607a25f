// Package fulfillment contiene los servicios de dominio puros del flujo de
// entrega de material: derivación del estado agregado de la solicitud y las
// reglas de débito/crédito sobre el stock. Sin dependencias de persistencia.
package fulfillment

import "github.com/jhoicas/Almacen-erp/internal/domain/entity"

// DeriveRequestStatus deriva el estado agregado de una solicitud a partir del
// estado de sus líneas. Es la única lógica que asigna el estado agregado y se
// ejecuta después de cada mutación a nivel de línea.
//
// Una línea PENDING o NO_STOCK deja la solicitud en PENDING (no está resuelta
// aunque otras líneas ya estén entregadas). Si no queda ninguna, la solicitud
// pasa a ISSUED. Una línea ISSUED_PARTIALLY cuenta como resuelta para el
// estado agregado aunque todavía se le deba material; ese comportamiento viene
// del producto y está cubierto por test para que cambiarlo sea una decisión
// deliberada.
func DeriveRequestStatus(statuses []entity.LineItemStatus) entity.RequestStatus {
	for _, s := range statuses {
		if s == entity.LineItemStatusPending || s == entity.LineItemStatusNoStock {
			return entity.RequestStatusPending
		}
	}
	return entity.RequestStatusIssued
}
