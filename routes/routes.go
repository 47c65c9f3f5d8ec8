package routes

import (
	"github.com/gofiber/fiber/v2"

	"facturacion-backend/controllers"
	"facturacion-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard (replays the first successful response for a key)
	protected.Use(middlewares.Idempotency())

	// Pacientes
	protected.Post("/paciente", controllers.CreatePaciente)
	protected.Get("/pacientes", controllers.GetPacientes)
	protected.Get("/pacientes/internados-con-descargos", controllers.GetInternadosConDescargos)
	protected.Get("/pacientes/alta-con-descargos-no-facturados", controllers.GetAltaConDescargosNoFacturados)
	protected.Get("/paciente/:id", controllers.GetPaciente)
	protected.Put("/paciente/:id", controllers.UpdatePaciente)
	protected.Delete("/paciente/:id", controllers.DeletePaciente)
	protected.Patch("/paciente/:id/alta", controllers.DarAltaPaciente)

	// Descargos (consumption batches)
	protected.Post("/paciente/:id/descargos", controllers.CreateDescargo)
	protected.Get("/paciente/:id/descargos", controllers.GetDescargosPaciente)

	// Catálogo
	protected.Post("/servicio", controllers.CreateServicio)
	protected.Get("/servicios", controllers.GetServicios)
	protected.Post("/producto", controllers.CreateProducto)
	protected.Get("/productos", controllers.GetProductos)

	// Clientes
	protected.Post("/cliente", controllers.CreateCliente)
	protected.Get("/clientes", controllers.GetClientes)
	protected.Get("/cliente/:id", controllers.GetCliente)
	protected.Put("/cliente/:id", controllers.UpdateCliente)

	// Facturas
	protected.Post("/factura", controllers.GenerateFactura)
	protected.Get("/facturas", controllers.GetFacturas)
	protected.Get("/factura/:id", controllers.GetFactura)
}
