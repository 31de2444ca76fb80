package mysql

// Legacy stored procedures. Each takes its full parameter list on every
// call; operations that do not use a parameter receive NULL in its place.
const (
	// MAN_CITAS(PROCESO, CitaID, ClienteID, PersonalID, FechaHoraInicio,
	//           FechaHoraFin, Estado, Descripcion, Notas, Desde, Hasta)
	// 1=insert (returns CitaID), 2=update (returns Afectados),
	// 3=delete (returns Afectados), 90=list.
	procAppointments = "MAN_CITAS"

	// MAN_CITA_SERVICIOS(PROCESO, CitaID, ServicioID, Cantidad, PrecioUnitario)
	// 1=insert (returns Resultado: 1=inserted, 2=quantity updated),
	// 3=delete (returns Afectados), 90=list, 91=list joined with the
	// service catalog, 92=aggregate total (returns TotalCita).
	procAppointmentLines = "MAN_CITA_SERVICIOS"

	// MAN_CLIENTES(PROCESO, ClienteID, Nombre, Apellidos, Telefono,
	//              CorreoElectronico, FechaRegistro)
	procClients = "MAN_CLIENTES"

	// MAN_PERSONAL(PROCESO, PersonalID, Nombre, Apellido, Rol, Telefono,
	//              CorreoElectronico, FechaIngreso, Activo)
	procStaff = "MAN_PERSONAL"

	// MAN_SERVICIOS(PROCESO, ServicioID, Nombre, Precio, DuracionMin)
	procServices = "MAN_SERVICIOS"

	// MAN_USUARIOS(PROCESO, UsuarioID, NombreUsuario, ContrasenaHash, Rol)
	procUsers = "MAN_USUARIOS"

	// AUTH_LOGIN(NombreUsuario, Contrasena) — no operation code.
	procLogin = "AUTH_LOGIN"
)

// nullable turns the zero string into SQL NULL; the procedures distinguish
// "absent" from "empty".
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
