package shared

// 错误提示文案，按 key 查找；未登记的 key 原样返回
var messages = map[string]string{
	"error.bad_request":            "Некорректный запрос",
	"error.unauthorized":           "Требуется авторизация",
	"error.forbidden":              "Недостаточно прав",
	"error.not_found":              "Страница не найдена",
	"error.internal":               "Внутренняя ошибка сервера",
	"error.too_many_requests":      "Слишком много попыток, попробуйте позже",
	"error.invalid_token":          "Сессия недействительна, войдите снова",
	"error.invalid_credentials":    "Неверное имя пользователя или пароль",
	"error.password_invalid":       "Текущий пароль указан неверно",
	"error.password_weak":          "Пароль не соответствует требованиям",
	"error.username_exists":        "Пользователь с таким именем уже существует",
	"error.username_invalid":       "Недопустимое имя пользователя",
	"error.email_invalid":          "Введите правильный адрес электронной почты",
	"error.post_not_found":         "Публикация не найдена",
	"error.post_title_required":    "Укажите заголовок публикации",
	"error.post_text_required":     "Укажите текст публикации",
	"error.post_forbidden":         "Можно изменять только свои публикации",
	"error.comment_not_found":      "Комментарий не найден",
	"error.comment_text_required":  "Комментарий не может быть пустым",
	"error.comment_forbidden":      "Можно изменять только свои комментарии",
	"error.category_not_found":     "Категория не найдена",
	"error.category_invalid":       "Выбранная категория не существует",
	"error.category_title_missing": "Укажите название категории",
	"error.location_not_found":     "Местоположение не найдено",
	"error.location_invalid":       "Выбранное местоположение не существует",
	"error.location_name_missing":  "Укажите название места",
	"error.slug_exists":            "Категория с таким идентификатором уже существует",
	"error.slug_invalid":           "Идентификатор может содержать только латиницу, цифры, дефис и подчёркивание",
	"error.slug_immutable":         "Идентификатор используется публикациями и не может быть изменён",
	"error.profile_not_found":      "Профиль не найден",
	"error.captcha_required":       "Введите код с картинки",
	"error.captcha_invalid":        "Код с картинки введён неверно",
	"error.captcha_config_invalid": "Капча настроена неверно",
	"error.upload_rejected":        "Файл не может быть загружен",
	"error.role_invalid":           "Недопустимая роль",
	"error.policy_invalid":         "Недопустимое правило доступа",
	"error.rate_limited":           "Слишком много попыток, повторите через %d с",
	"error.rate_limit_unavailable": "Сервис временно недоступен",
	"error.admin_not_found":        "Администратор не найден",
}

// Message 返回 key 对应的提示文案
func Message(key string) string {
	if msg, ok := messages[key]; ok {
		return msg
	}
	return key
}
