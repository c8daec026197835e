package directoryservice

// Business модель бизнеса из DirectoryService
type Business struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Timezone        string  `json:"timezone"` // IANA имя, например "America/Sao_Paulo"
	ManagerIDs      []int64 `json:"manager_ids"`
	ProfessionalIDs []int64 `json:"professional_ids"`
}

// HasProfessional возвращает true, если мастер работает в бизнесе
func (b *Business) HasProfessional(professionalID int64) bool {
	for _, id := range b.ProfessionalIDs {
		if id == professionalID {
			return true
		}
	}
	return false
}

// HasManager возвращает true, если пользователь является менеджером бизнеса
func (b *Business) HasManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
