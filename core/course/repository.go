package course

import "github.com/trezcool/masomo-admin/core"

type Repository = core.Repository[Curso, QueryFilter]
