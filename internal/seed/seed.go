// Package seed loads demonstration businesses and appointments through the
// domain services, so every record passes the same checks as API writes.
package seed

import (
	appointmentDto "agenda/internal/domains/appointment/model/dto"
	appointmentService "agenda/internal/domains/appointment/service"
	businessDto "agenda/internal/domains/business/model/dto"
	businessService "agenda/internal/domains/business/service"
	"agenda/shared/constant"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Result struct {
	BusinessIDs    []string
	AppointmentIDs []string
}

type hours = businessDto.DayHoursRequest

func week(weekday, friday, saturday, sunday hours) map[string]hours {
	return map[string]hours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    friday,
		"saturday":  saturday,
		"sunday":    sunday,
	}
}

// Businesses are the four sample businesses in creation order.
func Businesses() []businessDto.CreateBusinessRequest {
	return []businessDto.CreateBusinessRequest{
		{
			Name:         "Barbería El Clásico",
			BusinessType: "barberia",
			Address:      "Av. Reforma #456, Col. Centro",
			Phone:        "+52 55 1234-5678",
			Email:        "contacto@barberiaelclasico.com",
			Description:  "La mejor barbería tradicional de la ciudad con más de 20 años de experiencia",
			OpeningHours: week(hours{Open: "09:00", Close: "20:00"}, hours{Open: "09:00", Close: "21:00"}, hours{Open: "09:00", Close: "21:00"}, hours{Open: "10:00", Close: "15:00"}),
			Services: []businessDto.ServiceRequest{
				{ID: "srv-1", Name: "Corte de Cabello", Duration: 30, Price: 200, Description: "Corte profesional con estilo"},
				{ID: "srv-2", Name: "Barba", Duration: 20, Price: 150, Description: "Arreglo de barba profesional"},
				{ID: "srv-3", Name: "Corte + Barba", Duration: 45, Price: 320, Description: "Paquete completo"},
				{ID: "srv-4", Name: "Afeitado Clásico", Duration: 25, Price: 180, Description: "Con navaja y toallas calientes"},
			},
			Employees: []businessDto.EmployeeRequest{
				{ID: "emp-1", Name: "Carlos Rodríguez", Role: "Barbero Senior", Specialties: []string{"Corte", "Barba", "Afeitado"}},
				{ID: "emp-2", Name: "Miguel Ángel Torres", Role: "Barbero", Specialties: []string{"Corte", "Diseño"}},
			},
			Config: businessDto.ConfigRequest{
				Color:              "#2C3E50",
				AllowOnlineBooking: true,
				CancellationPolicy: "24 horas de anticipación",
			},
		},
		{
			Name:         "Spa Serenity",
			BusinessType: "spa",
			Address:      "Blvd. de las Estrellas #789, Plaza Premium",
			Phone:        "+52 55 9876-5432",
			Email:        "info@spaserenity.com",
			Description:  "Spa de lujo con tratamientos personalizados y atención premium",
			OpeningHours: week(hours{Open: "10:00", Close: "20:00"}, hours{Open: "10:00", Close: "21:00"}, hours{Open: "09:00", Close: "21:00"}, hours{Open: "09:00", Close: "18:00"}),
			Services: []businessDto.ServiceRequest{
				{ID: "srv-1", Name: "Masaje Relajante", Duration: 60, Price: 800, Description: "60 minutos de relajación total"},
				{ID: "srv-2", Name: "Facial Hidratante", Duration: 45, Price: 650, Description: "Tratamiento facial profundo"},
				{ID: "srv-3", Name: "Masaje de Piedras Calientes", Duration: 90, Price: 1200, Description: "Terapia con piedras volcánicas"},
				{ID: "srv-4", Name: "Paquete Spa Day", Duration: 180, Price: 2500, Description: "Día completo de spa"},
			},
			Employees: []businessDto.EmployeeRequest{
				{ID: "emp-1", Name: "Laura Martínez", Role: "Terapeuta Senior", Specialties: []string{"Masaje", "Aromaterapia"}},
				{ID: "emp-2", Name: "Ana Patricia Sánchez", Role: "Esteticista", Specialties: []string{"Facial", "Corporal"}},
			},
			Config: businessDto.ConfigRequest{
				Color:              "#00BCD4",
				AllowOnlineBooking: true,
				RequiresDeposit:    true,
				CancellationPolicy: "48 horas de anticipación",
			},
		},
		{
			Name:         "Ink Masters Tattoo",
			BusinessType: "tatuajes",
			Address:      "Calle Insurgentes #321, Col. Hipster",
			Phone:        "+52 55 5555-7890",
			Email:        "contacto@inkmasters.com",
			Description:  "Estudio profesional de tatuajes con artistas reconocidos internacionalmente",
			OpeningHours: week(hours{Open: "12:00", Close: "20:00"}, hours{Open: "12:00", Close: "22:00"}, hours{Open: "11:00", Close: "22:00"}, hours{Open: "11:00", Close: "18:00", Closed: true}),
			Services: []businessDto.ServiceRequest{
				{ID: "srv-1", Name: "Tatuaje Pequeño", Duration: 60, Price: 1500, Description: "Hasta 5cm"},
				{ID: "srv-2", Name: "Tatuaje Mediano", Duration: 120, Price: 3000, Description: "5-15cm"},
				{ID: "srv-3", Name: "Tatuaje Grande", Duration: 240, Price: 6000, Description: "Más de 15cm"},
				{ID: "srv-4", Name: "Consulta y Diseño", Duration: 30, Price: 0, Description: "Diseño personalizado gratuito"},
			},
			Employees: []businessDto.EmployeeRequest{
				{ID: "emp-1", Name: `Roberto "Ink" García`, Role: "Tatuador Principal", Specialties: []string{"Realismo", "Japonés"}},
				{ID: "emp-2", Name: "Diana Flores", Role: "Tatuadora", Specialties: []string{"Blackwork", "Geométrico"}},
			},
			Config: businessDto.ConfigRequest{
				Color:              "#9C27B0",
				AllowOnlineBooking: true,
				RequiresDeposit:    true,
				CancellationPolicy: "72 horas de anticipación, se pierde el depósito",
			},
		},
		{
			Name:         "Clínica Dental Sonrisas",
			BusinessType: "dental",
			Address:      "Av. Universidad #567, Torre Médica",
			Phone:        "+52 55 1111-2222",
			Email:        "citas@clinicasonrisas.com",
			Description:  "Clínica dental con tecnología de vanguardia y especialistas certificados",
			OpeningHours: week(hours{Open: "08:00", Close: "19:00"}, hours{Open: "08:00", Close: "19:00"}, hours{Open: "09:00", Close: "14:00"}, hours{Open: "09:00", Close: "14:00", Closed: true}),
			Services: []businessDto.ServiceRequest{
				{ID: "srv-1", Name: "Limpieza Dental", Duration: 45, Price: 500, Description: "Profilaxis completa"},
				{ID: "srv-2", Name: "Extracción Simple", Duration: 30, Price: 800, Description: "Extracción de pieza dental"},
				{ID: "srv-3", Name: "Resina", Duration: 60, Price: 900, Description: "Restauración estética"},
				{ID: "srv-4", Name: "Blanqueamiento", Duration: 90, Price: 3500, Description: "Blanqueamiento dental profesional"},
			},
			Employees: []businessDto.EmployeeRequest{
				{ID: "emp-1", Name: "Dr. José Luis Ramírez", Role: "Odontólogo General", Specialties: []string{"Odontología General", "Endodoncia"}},
				{ID: "emp-2", Name: "Dra. María Fernanda López", Role: "Ortodoncista", Specialties: []string{"Ortodoncia", "Estética Dental"}},
			},
			Config: businessDto.ConfigRequest{
				Color:              "#03A9F4",
				AllowOnlineBooking: true,
				CancellationPolicy: "24 horas de anticipación",
			},
		},
	}
}

// Appointments are the sample bookings for the barbería and the spa, dated
// relative to today.
func Appointments(barberiaID, spaID string, today time.Time) []appointmentDto.CreateAppointmentRequest {
	day := today.Format(constant.DayFormat)
	tomorrow := today.AddDate(0, 0, 1).Format(constant.DayFormat)

	return []appointmentDto.CreateAppointmentRequest{
		{
			BusinessID: barberiaID,
			Client:     appointmentDto.ClientRequest{Name: "Juan Pérez", Phone: "+52 55 9999-1111", Email: "juan.perez@email.com"},
			Date:       day,
			Time:       "10:00",
			Duration:   30,
			Service:    &appointmentDto.ServiceRequest{ID: "srv-1", Name: "Corte de Cabello", Price: 200},
			Employee:   &appointmentDto.EmployeeRequest{ID: "emp-1", Name: "Carlos Rodríguez"},
			Status:     "confirmed",
			Notes:      "Cliente prefiere corte corto",
		},
		{
			BusinessID: barberiaID,
			Client:     appointmentDto.ClientRequest{Name: "Pedro González", Phone: "+52 55 8888-2222", Email: "pedro@email.com"},
			Date:       tomorrow,
			Time:       "15:00",
			Duration:   45,
			Service:    &appointmentDto.ServiceRequest{ID: "srv-3", Name: "Corte + Barba", Price: 320},
			Employee:   &appointmentDto.EmployeeRequest{ID: "emp-2", Name: "Miguel Ángel Torres"},
			Status:     "pending",
		},
		{
			BusinessID: spaID,
			Client:     appointmentDto.ClientRequest{Name: "María López", Phone: "+52 55 7777-3333", Email: "maria@email.com"},
			Date:       day,
			Time:       "14:00",
			Duration:   60,
			Service:    &appointmentDto.ServiceRequest{ID: "srv-1", Name: "Masaje Relajante", Price: 800},
			Employee:   &appointmentDto.EmployeeRequest{ID: "emp-1", Name: "Laura Martínez"},
			Status:     "confirmed",
			Notes:      "Primera visita",
		},
	}
}

// Run creates the sample businesses and then their appointments. Both
// services must already be subscribed.
func Run(ctx context.Context, directory businessService.Directory, ledger appointmentService.Ledger, today time.Time) (Result, error) {
	var res Result

	for _, req := range Businesses() {
		biz, err := directory.Create(ctx, req)
		if err != nil {
			return res, fmt.Errorf("failed to seed business %q: %w", req.Name, err)
		}

		log.Info().Str("id", biz.ID).Str("name", biz.Name).Msg("Business seeded")

		res.BusinessIDs = append(res.BusinessIDs, biz.ID)
	}

	for _, req := range Appointments(res.BusinessIDs[0], res.BusinessIDs[1], today) {
		apt, err := ledger.Create(ctx, req)
		if err != nil {
			return res, fmt.Errorf("failed to seed appointment for %s: %w", req.Client.Name, err)
		}

		log.Info().Str("id", apt.ID).Str("client", req.Client.Name).Msg("Appointment seeded")

		res.AppointmentIDs = append(res.AppointmentIDs, apt.ID)
	}

	return res, nil
}
