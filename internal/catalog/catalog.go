// Package catalog holds the translated messages shown to users
package catalog

import (
	"fmt"
	"sync"

	"github.com/ytget/app-inspector/internal/model"
)

// Text keys
const (
	KeyAppTitle           = "app_title"
	KeyApps               = "apps"
	KeyDetails            = "details"
	KeyRefresh            = "refresh"
	KeyRetry              = "retry"
	KeyLaunch             = "launch"
	KeyLoading            = "loading"
	KeyNoApps             = "no_apps"
	KeySelectApp          = "select_app"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyIconBudget         = "icon_budget"
	KeyNotificationBuffer = "notification_buffer"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeySettingsSaved      = "settings_saved"
	KeyIdentifier         = "identifier"
	KeyVersion            = "version"
	KeyChecksum           = "checksum"
	KeySystemApp          = "system_app"
	KeyLaunchable         = "launchable"
	KeySourcePath         = "source_path"
	KeyYes                = "yes"
	KeyNo                 = "no"
	KeyErrNotFound        = "err_not_found"
	KeyErrPermission      = "err_permission"
	KeyErrUnknown         = "err_unknown"
	KeyErrTimeout         = "err_timeout"
	KeyLaunchSuccess      = "launch_success"
	KeyLaunchNoEntry      = "launch_not_supported"
	KeyLaunchNotFound     = "launch_not_found"
	KeyLaunchError        = "launch_error"
	KeyEmptyID            = "empty_identifier"
)

// DefaultLanguage is used for missing translations
const DefaultLanguage = "en"

// Catalog resolves text keys for the current language. It is safe for
// concurrent use; effects render messages off the UI goroutine.
type Catalog struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
}

// New creates a catalog in the default language
func New() *Catalog {
	c := &Catalog{
		currentLanguage: DefaultLanguage,
		texts:           make(map[string]map[string]string),
	}
	c.initializeTexts()
	return c
}

// SetLanguage switches the current language. Unknown codes are ignored and
// "system" maps to English.
func (c *Catalog) SetLanguage(lang string) {
	if lang == "system" {
		lang = DefaultLanguage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.texts[lang]; exists {
		c.currentLanguage = lang
	}
}

// Language returns the current language code
func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentLanguage
}

// Text returns the localized text for key, formatted with args when given.
// Falls back to English and then to the key itself.
func (c *Catalog) Text(key string, args ...any) string {
	format := c.lookup(key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func (c *Catalog) lookup(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if texts, exists := c.texts[c.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}
	if text, found := c.texts[DefaultLanguage][key]; found {
		return text
	}
	return key
}

// Languages returns the available languages with their display names
func Languages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// Texter is anything that resolves text keys
type Texter interface {
	Text(key string, args ...any) string
}

// ErrorMessage renders a classified error
func ErrorMessage(t Texter, err model.AppError) string {
	switch e := err.(type) {
	case *model.NotFoundError:
		return t.Text(KeyErrNotFound, e.ID)
	case *model.PermissionDeniedError:
		return t.Text(KeyErrPermission, e.Resource)
	case *model.UnknownError:
		return t.Text(KeyErrUnknown, e.Message)
	case *model.TimeoutError:
		return t.Text(KeyErrTimeout, e.Operation)
	default:
		panic(fmt.Sprintf("catalog: unhandled error variant %T", err))
	}
}

// LaunchMessage renders a launch outcome
func LaunchMessage(t Texter, result model.LaunchResult, id string) string {
	switch r := result.(type) {
	case model.LaunchSuccess:
		return t.Text(KeyLaunchSuccess, id)
	case model.LaunchNotSupported:
		return t.Text(KeyLaunchNoEntry, id)
	case model.LaunchNotFound:
		return t.Text(KeyLaunchNotFound, r.ID)
	case model.LaunchError:
		return t.Text(KeyLaunchError, r.Message)
	default:
		panic(fmt.Sprintf("catalog: unhandled launch result %T", result))
	}
}

func (c *Catalog) initializeTexts() {
	c.texts["en"] = map[string]string{
		KeyAppTitle:           "App Inspector",
		KeyApps:               "Apps",
		KeyDetails:            "Details",
		KeyRefresh:            "Refresh",
		KeyRetry:              "Retry",
		KeyLaunch:             "Launch",
		KeyLoading:            "Loading...",
		KeyNoApps:             "No apps found",
		KeySelectApp:          "Select an app",
		KeySettings:           "Settings",
		KeyLanguage:           "Language",
		KeyIconBudget:         "Icon Cache (MB)",
		KeyNotificationBuffer: "Notification Buffer",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyIdentifier:         "Package",
		KeyVersion:            "Version",
		KeyChecksum:           "SHA-256",
		KeySystemApp:          "System app",
		KeyLaunchable:         "Launchable",
		KeySourcePath:         "Source",
		KeyYes:                "Yes",
		KeyNo:                 "No",
		KeyErrNotFound:        "App not found: %s",
		KeyErrPermission:      "Permission denied: %s",
		KeyErrUnknown:         "Something went wrong: %s",
		KeyErrTimeout:         "Timed out: %s",
		KeyLaunchSuccess:      "Launched %s",
		KeyLaunchNoEntry:      "%s cannot be launched",
		KeyLaunchNotFound:     "App not installed: %s",
		KeyLaunchError:        "Launch failed: %s",
		KeyEmptyID:            "No app selected",
	}

	c.texts["ru"] = map[string]string{
		KeyAppTitle:           "Инспектор приложений",
		KeyApps:               "Приложения",
		KeyDetails:            "Подробности",
		KeyRefresh:            "Обновить",
		KeyRetry:              "Повторить",
		KeyLaunch:             "Запустить",
		KeyLoading:            "Загрузка...",
		KeyNoApps:             "Приложения не найдены",
		KeySelectApp:          "Выберите приложение",
		KeySettings:           "Настройки",
		KeyLanguage:           "Язык",
		KeyIconBudget:         "Кэш иконок (МБ)",
		KeyNotificationBuffer: "Буфер уведомлений",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyIdentifier:         "Пакет",
		KeyVersion:            "Версия",
		KeyChecksum:           "SHA-256",
		KeySystemApp:          "Системное",
		KeyLaunchable:         "Запускаемое",
		KeySourcePath:         "Источник",
		KeyYes:                "Да",
		KeyNo:                 "Нет",
		KeyErrNotFound:        "Приложение не найдено: %s",
		KeyErrPermission:      "Доступ запрещён: %s",
		KeyErrUnknown:         "Что-то пошло не так: %s",
		KeyErrTimeout:         "Превышено время ожидания: %s",
		KeyLaunchSuccess:      "Запущено %s",
		KeyLaunchNoEntry:      "%s нельзя запустить",
		KeyLaunchNotFound:     "Приложение не установлено: %s",
		KeyLaunchError:        "Ошибка запуска: %s",
		KeyEmptyID:            "Приложение не выбрано",
	}

	c.texts["pt"] = map[string]string{
		KeyAppTitle:           "Inspetor de Apps",
		KeyApps:               "Apps",
		KeyDetails:            "Detalhes",
		KeyRefresh:            "Atualizar",
		KeyRetry:              "Tentar novamente",
		KeyLaunch:             "Abrir",
		KeyLoading:            "Carregando...",
		KeyNoApps:             "Nenhum app encontrado",
		KeySelectApp:          "Selecione um app",
		KeySettings:           "Configurações",
		KeyLanguage:           "Idioma",
		KeyIconBudget:         "Cache de Ícones (MB)",
		KeyNotificationBuffer: "Buffer de Notificações",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyIdentifier:         "Pacote",
		KeyVersion:            "Versão",
		KeyChecksum:           "SHA-256",
		KeySystemApp:          "App do sistema",
		KeyLaunchable:         "Executável",
		KeySourcePath:         "Origem",
		KeyYes:                "Sim",
		KeyNo:                 "Não",
		KeyErrNotFound:        "App não encontrado: %s",
		KeyErrPermission:      "Permissão negada: %s",
		KeyErrUnknown:         "Algo deu errado: %s",
		KeyErrTimeout:         "Tempo esgotado: %s",
		KeyLaunchSuccess:      "%s aberto",
		KeyLaunchNoEntry:      "%s não pode ser aberto",
		KeyLaunchNotFound:     "App não instalado: %s",
		KeyLaunchError:        "Falha ao abrir: %s",
		KeyEmptyID:            "Nenhum app selecionado",
	}
}
