// Package notify — уведомления после фиксации операций.
// Сервисы ядра НЕ отправляют ничего сами: они возвращают список событий,
// а диспетчер доставляет их уже после коммита. Ошибка доставки логируется
// и глотается — она никогда не влияет на результат операции.
package notify

// TargetKind — кому адресовано событие.
type TargetKind int

const (
	// TargetSeller — конкретный колектор (по seller_name)
	TargetSeller TargetKind = iota
	// TargetStaff — все админы и супер-админы
	TargetStaff
	// TargetStaffExcept — все админы, кроме указанного username
	TargetStaffExcept
)

// Event — одно уведомление: адресат + заголовок + текст.
type Event struct {
	Target     TargetKind
	SellerName string // для TargetSeller
	ExceptUser string // для TargetStaffExcept
	Title      string
	Body       string
}

// ToSeller создаёт событие для колектора.
func ToSeller(sellerName, title, body string) Event {
	return Event{Target: TargetSeller, SellerName: sellerName, Title: title, Body: body}
}

// ToStaff создаёт событие для всего персонала.
func ToStaff(title, body string) Event {
	return Event{Target: TargetStaff, Title: title, Body: body}
}

// ToStaffExcept создаёт событие для персонала, исключая инициатора.
func ToStaffExcept(exceptUser, title, body string) Event {
	return Event{Target: TargetStaffExcept, ExceptUser: exceptUser, Title: title, Body: body}
}
