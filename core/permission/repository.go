package permission

import "github.com/trezcool/masomo-admin/core"

type Repository = core.Repository[Permissao, QueryFilter]
