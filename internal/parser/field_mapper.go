package parser

// 标准化字段名（引擎内部统一使用的字段标识）
const (
	FieldCustomerID   = "customerId"
	FieldName         = "name"
	FieldGender       = "gender"
	FieldAge          = "age"
	FieldPhone        = "phone"
	FieldAddress      = "address"
	FieldBirthday     = "birthday"
	FieldMemberCardNo = "memberCardNo"
	FieldMemberLevel  = "memberLevel"
	FieldStore        = "store"
	FieldRemarks      = "remarks"

	FieldHealthCondition = "healthCondition"
	FieldAllergies       = "allergies"
	FieldChronicDiseases = "chronicDiseases"
	FieldMedicalHistory  = "medicalHistory"
	FieldWeight          = "weight"
	FieldHeight          = "height"
	FieldBloodType       = "bloodType"

	FieldLifeHabits   = "lifeHabits"
	FieldSleepPattern = "sleepPattern"
	FieldDietHabits   = "dietHabits"
	FieldExercise     = "exercise"
	FieldHobbies      = "hobbies"

	FieldConsumptionDate = "consumptionDate"
	FieldProjectName     = "projectName"
	FieldAmount          = "amount"
	FieldPaymentMethod   = "paymentMethod"
	FieldTechnician      = "technician"
	FieldSatisfaction    = "satisfaction"
)

// fieldSynonyms 表头同义词表：多个人工命名的表头映射到同一个标准字段。
// 扩展新同义词只需在这里加一行，不需要新代码路径。
var fieldSynonyms = map[string]string{
	// 客户基本信息
	"客户ID":  FieldCustomerID,
	"客户编号": FieldCustomerID,
	"顾客编号": FieldCustomerID,
	"姓名":   FieldName,
	"客户姓名": FieldName,
	"顾客姓名": FieldName,
	"性别":   FieldGender,
	"年龄":   FieldAge,
	"手机":   FieldPhone,
	"手机号":  FieldPhone,
	"手机号码": FieldPhone,
	"电话":   FieldPhone,
	"电话号码": FieldPhone,
	"联系方式": FieldPhone,
	"地址":   FieldAddress,
	"客户地址": FieldAddress,
	"家庭住址": FieldAddress,
	"居住地址": FieldAddress,
	"生日":   FieldBirthday,
	"出生日期": FieldBirthday,
	"会员卡号": FieldMemberCardNo,
	"卡号":   FieldMemberCardNo,
	"会员级别": FieldMemberLevel,
	"等级":   FieldMemberLevel,
	"门店":   FieldStore,
	"门店名称": FieldStore,
	"店铺":   FieldStore,
	"备注":   FieldRemarks,
	"客户备注": FieldRemarks,
	"顾客备注": FieldRemarks,

	// 健康档案
	"健康状况": FieldHealthCondition,
	"健康情况": FieldHealthCondition,
	"身体状况": FieldHealthCondition,
	"过敏史":  FieldAllergies,
	"过敏情况": FieldAllergies,
	"过敏原":  FieldAllergies,
	"慢性病":  FieldChronicDiseases,
	"病史":   FieldMedicalHistory,
	"既往病史": FieldMedicalHistory,
	"医疗历史": FieldMedicalHistory,
	"体重":   FieldWeight,
	"身高":   FieldHeight,
	"血型":   FieldBloodType,

	// 生活习惯
	"生活习惯": FieldLifeHabits,
	"习惯":   FieldLifeHabits,
	"作息时间": FieldSleepPattern,
	"睡眠":   FieldSleepPattern,
	"睡眠习惯": FieldSleepPattern,
	"饮食习惯": FieldDietHabits,
	"饮食":   FieldDietHabits,
	"饮食偏好": FieldDietHabits,
	"运动":   FieldExercise,
	"运动习惯": FieldExercise,
	"兴趣爱好": FieldHobbies,
	"爱好":   FieldHobbies,

	// 消费记录
	"消费日期": FieldConsumptionDate,
	"日期":   FieldConsumptionDate,
	"消费时间": FieldConsumptionDate,
	"项目":   FieldProjectName,
	"项目名称": FieldProjectName,
	"服务项目": FieldProjectName,
	"消费项目": FieldProjectName,
	"金额":   FieldAmount,
	"消费金额": FieldAmount,
	"价格":   FieldAmount,
	"实付金额": FieldAmount,
	"支付方式": FieldPaymentMethod,
	"付款方式": FieldPaymentMethod,
	"支付类型": FieldPaymentMethod,
	"技师":   FieldTechnician,
	"服务技师": FieldTechnician,
	"操作技师": FieldTechnician,
	"服务人员": FieldTechnician,
	"满意度":  FieldSatisfaction,
	"满意程度": FieldSatisfaction,
	"评价":   FieldSatisfaction,
	"服务评价": FieldSatisfaction,
}

// healthFields 归入健康档案分组的标准字段
var healthFields = map[string]bool{
	FieldHealthCondition: true,
	FieldAllergies:       true,
	FieldChronicDiseases: true,
	FieldMedicalHistory:  true,
	FieldWeight:          true,
	FieldHeight:          true,
	FieldBloodType:       true,
}

// habitFields 归入生活习惯分组的标准字段
var habitFields = map[string]bool{
	FieldLifeHabits:   true,
	FieldSleepPattern: true,
	FieldDietHabits:   true,
	FieldExercise:     true,
	FieldHobbies:      true,
}

// CanonicalField 查询单个表头的标准字段名
// 未收录的表头原样返回，未知列保留而不是丢弃。
func CanonicalField(header string) string {
	h := NormalizeHeader(header)
	if canonical, ok := fieldSynonyms[h]; ok {
		return canonical
	}
	return header
}

// CanonicalizeHeaders 将表头序列逐个标准化，长度与顺序保持不变
func CanonicalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = CanonicalField(h)
	}
	return out
}

// IsHealthField 字段是否属于健康档案分组
func IsHealthField(canonical string) bool {
	return healthFields[canonical]
}

// IsHabitField 字段是否属于生活习惯分组
func IsHabitField(canonical string) bool {
	return habitFields[canonical]
}

// SynonymTable 返回同义词表的副本（供一致性检查使用）
func SynonymTable() map[string]string {
	out := make(map[string]string, len(fieldSynonyms))
	for k, v := range fieldSynonyms {
		out[k] = v
	}
	return out
}
