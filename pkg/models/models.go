package models

// Profile — физиологический профиль пользователя, собираемый при настройке
type Profile struct {
	Weight   int    // кг
	Height   int    // см
	Age      int    // лет
	Activity int    // минут активности в день
	City     string // город проживания (для погоды)
}

// Temperature — температура в городе пользователя.
// Known=false означает, что данные получить не удалось — это не то же самое, что 0°C.
type Temperature struct {
	Celsius float64
	Known   bool
}

// Entry — запись трекинга пользователя: цели и накопленные показатели.
// Накопительные поля только растут, сброс — целиком через /reset
type Entry struct {
	Profile        Profile
	WaterGoal      int     // мл
	CalorieGoal    float64 // ккал
	LoggedWater    int     // мл, выпито
	LoggedCalories float64 // ккал, потреблено
	BurnedCalories float64 // ккал, сожжено
}

// Snapshot — срез текущего прогресса для /check_progress и графиков
type Snapshot struct {
	WaterConsumed    int
	WaterGoal        int
	WaterRemaining   int
	CaloriesConsumed float64
	CalorieGoal      float64
	CaloriesBurned   float64
	CalorieBalance   float64
}

// Константы состояний диалогов (FSM)
const (
	// Онбординг профиля: строго линейная последовательность шагов
	StateAwaitWeight   = "await_weight"
	StateAwaitHeight   = "await_height"
	StateAwaitAge      = "await_age"
	StateAwaitActivity = "await_activity"
	StateAwaitCity     = "await_city"

	// Двухшаговый диалог логирования еды
	StateAwaitFoodWeight = "await_food_weight"

	// Диалог завершён, сессию можно удалять
	StateDone = "done"
)

// Session — незавершённый диалог пользователя.
// Пользователь находится максимум в одном диалоге: новая команда
// /set_profile или /log_food перезаписывает текущую сессию
type Session struct {
	State   string
	Profile Profile // частично заполненный профиль (онбординг)

	// Кэш двухшагового диалога еды, очищается при фиксации
	FoodName        string
	CaloriesPer100g float64
}

// Button — inline-кнопка ответа
type Button struct {
	Label string
	Data  string
}

// Reply — ответ ядра транспортному слою.
// Нулевой Reply означает, что отвечать не нужно
type Reply struct {
	Text    string
	HTML    bool // отправлять с parse_mode=HTML
	Photo   []byte
	Caption string
	Buttons []Button
}

// Empty сообщает, есть ли что отправлять в чат
func (r Reply) Empty() bool {
	return r.Text == "" && len(r.Photo) == 0
}
